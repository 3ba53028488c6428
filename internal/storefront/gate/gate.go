package gate

import (
	"velora_storefront/internal/storefront/session"
)

// View est l'une des pages nommées du storefront.
type View string

const (
	ViewHome           View = "home"
	ViewProducts       View = "products"
	ViewProductDetail  View = "product-detail"
	ViewAccount        View = "account"
	ViewOrders         View = "orders"
	ViewOrderSummary   View = "order-summary"
	ViewPayment        View = "payment"
	ViewAdminDashboard View = "admin-dashboard"
)

var knownViews = map[View]bool{
	ViewHome:           true,
	ViewProducts:       true,
	ViewProductDetail:  true,
	ViewAccount:        true,
	ViewOrders:         true,
	ViewOrderSummary:   true,
	ViewPayment:        true,
	ViewAdminDashboard: true,
}

// Level qualifie une notice à la manière des toasts Bootstrap.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notifier affiche une notice transiente à l'utilisateur.
type Notifier interface {
	Notify(message, title string, level Level)
}

// Gate arbitre la navigation entre les vues selon la session active.
type Gate struct {
	sessions    *session.Manager
	notifier    Notifier
	current     View
	refreshers  map[View][]func() error
	loginPrompt func()
}

func New(sessions *session.Manager, notifier Notifier) *Gate {
	return &Gate{
		sessions:   sessions,
		notifier:   notifier,
		current:    ViewHome,
		refreshers: make(map[View][]func() error),
	}
}

// Current renvoie la vue affichée.
func (g *Gate) Current() View {
	return g.current
}

// OnEnter enregistre un rafraîchissement exécuté avant l'entrée dans la
// vue (rechargement des listings produits / commandes / admin).
func (g *Gate) OnEnter(view View, fn func() error) {
	g.refreshers[view] = append(g.refreshers[view], fn)
}

// SetLoginPrompt définit l'effet de bord "ouvrir la fenêtre de login"
// déclenché quand un anonyme tente d'entrer sur une vue restreinte.
func (g *Gate) SetLoginPrompt(fn func()) {
	g.loginPrompt = fn
}

// RequestNavigate applique les règles d'accès puis change de vue.
// Une navigation refusée ne change jamais la vue courante.
func (g *Gate) RequestNavigate(view View) bool {
	if !knownViews[view] {
		return false
	}

	switch view {
	case ViewAccount:
		if g.sessions.Anonymous() {
			if g.loginPrompt != nil {
				g.loginPrompt()
			}
			return false
		}
	case ViewAdminDashboard:
		if !g.sessions.Current().IsAdmin() {
			g.notifier.Notify("Admin access only!", "Access Denied", LevelDanger)
			return false
		}
	}

	// Rafraîchir les listings avant d'afficher la vue. Un échec est
	// signalé mais n'annule pas la navigation (comportement observé).
	for _, fn := range g.refreshers[view] {
		if err := fn(); err != nil {
			g.notifier.Notify(err.Error(), "Error", LevelDanger)
		}
	}

	g.current = view
	return true
}
