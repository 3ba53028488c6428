package session

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session est l'identité locale de l'utilisateur connecté.
type Session struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Token   string `json:"token,omitempty"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Manager détient la session active (une seule par client) et la
// persiste dans un Store durable. Une session absente = anonyme.
type Manager struct {
	store   Store
	current *Session
}

// NewManager restaure la session éventuellement persistée.
// Une entrée illisible est ignorée : on repart anonyme.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}
	if sess, err := store.Load(); err == nil {
		m.current = sess
	}
	return m
}

// Current renvoie la session active, ou nil si anonyme.
func (m *Manager) Current() *Session {
	return m.current
}

func (m *Manager) Anonymous() bool {
	return m.current == nil
}

// Login remplace la session active et la persiste.
func (m *Manager) Login(sess Session) error {
	m.current = &sess
	return m.store.Save(&sess)
}

// Logout repasse en anonyme et efface l'entrée persistée.
func (m *Manager) Logout() error {
	m.current = nil
	return m.store.Clear()
}

// Update persiste la session modifiée (mise à jour du compte).
func (m *Manager) Update(sess Session) error {
	// le token survit à une mise à jour du profil
	if sess.Token == "" && m.current != nil {
		sess.Token = m.current.Token
	}
	m.current = &sess
	return m.store.Save(&sess)
}
