package api

import "fmt"

// Taxonomie d'erreurs du client API. Chaque échec d'appel est traduit
// en exactement une de ces catégories ; aucune ne doit remonter brute
// jusqu'à la machine à états.

// ValidationError : champ requis manquant/invalide, ou réponse dont la
// forme ne correspond pas au contrat attendu.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError : identifiants invalides ou accès refusé.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError : entité absente.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NetworkError : API injoignable ou réponse indéchiffrable. Distinct
// des erreurs métier rapportées par le serveur.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError : erreur métier rapportée par le serveur ; Message est
// présenté tel quel à l'utilisateur.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }
