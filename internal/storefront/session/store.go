package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNoSession signale l'absence d'entrée persistée (anonyme).
var ErrNoSession = errors.New("session: no stored session")

// Store persiste la session sous une clé unique, à la manière du
// localStorage du navigateur.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore écrit la session en JSON dans un fichier unique.
type FileStore struct {
	path string
}

// NewFileStore range la session sous le répertoire de config utilisateur.
func NewFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	dir = filepath.Join(dir, "velora")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, "session.json")}, nil
}

// NewFileStoreAt cible un fichier précis (tests).
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.ID == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *FileStore) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore garde la session en mémoire (tests, sessions jetables).
type MemoryStore struct {
	sess *Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (*Session, error) {
	if s.sess == nil {
		return nil, ErrNoSession
	}
	copy := *s.sess
	return &copy, nil
}

func (s *MemoryStore) Save(sess *Session) error {
	copy := *sess
	s.sess = &copy
	return nil
}

func (s *MemoryStore) Clear() error {
	s.sess = nil
	return nil
}
