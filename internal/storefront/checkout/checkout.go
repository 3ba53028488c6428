package checkout

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"velora_storefront/internal/storefront/api"
	"velora_storefront/internal/storefront/cart"
	"velora_storefront/internal/storefront/gate"
	"velora_storefront/internal/storefront/session"
)

// PaymentMethodCOD est le seul mode de paiement concret (placeholder).
const PaymentMethodCOD = "COD"

// OrderPlacer est le collaborateur externe qui enregistre la commande.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req api.OrderRequest) (api.Order, error)
}

// Confirmation est la vue en lecture seule affichée avant l'envoi.
type Confirmation struct {
	Name    string
	Phone   string
	Address string
}

// Flow enchaîne panier → récapitulatif → paiement → confirmation →
// envoi, avec les gardes de chaque étape.
type Flow struct {
	cart     *cart.Cart
	sessions *session.Manager
	gate     *gate.Gate
	orders   OrderPlacer
	notifier gate.Notifier

	pendingMethod string
	inFlight      atomic.Bool
}

func NewFlow(c *cart.Cart, sessions *session.Manager, g *gate.Gate, orders OrderPlacer, notifier gate.Notifier) *Flow {
	return &Flow{
		cart:     c,
		sessions: sessions,
		gate:     g,
		orders:   orders,
		notifier: notifier,
	}
}

// OpenCart ouvre la fenêtre panier : aucun garde, simple projection.
func (f *Flow) OpenCart() cart.Snapshot {
	return f.cart.Snapshot()
}

// ViewSummary passe au récapitulatif si le panier n'est pas vide.
func (f *Flow) ViewSummary() bool {
	if f.cart.Len() == 0 {
		f.notifier.Notify("Your cart is empty!", "Notice", gate.LevelWarning)
		return false
	}
	return f.gate.RequestNavigate(gate.ViewOrderSummary)
}

// ProceedToPayment exige une session authentifiée ET un panier non
// vide, avec des notices distinctes pour chaque violation.
func (f *Flow) ProceedToPayment() bool {
	if f.sessions.Anonymous() {
		f.notifier.Notify("Please login first to proceed.", "Login Required", gate.LevelWarning)
		return false
	}
	if f.cart.Len() == 0 {
		f.notifier.Notify("Your cart is empty!", "Notice", gate.LevelWarning)
		return false
	}
	return f.gate.RequestNavigate(gate.ViewPayment)
}

// ChoosePaymentMethod enregistre le mode choisi et prépare la vue de
// confirmation depuis la session ("Not provided" si absent).
func (f *Flow) ChoosePaymentMethod(method string) (Confirmation, bool) {
	if f.sessions.Anonymous() {
		f.notifier.Notify("Please login first.", "Login Required", gate.LevelWarning)
		return Confirmation{}, false
	}
	if f.cart.Len() == 0 {
		f.notifier.Notify("Your cart is empty!", "Notice", gate.LevelWarning)
		return Confirmation{}, false
	}

	sess := f.sessions.Current()
	f.pendingMethod = method

	name, _, _ := strings.Cut(sess.Email, "@")
	if name == "" {
		name = "Name not set"
	}
	phone := sess.Phone
	if phone == "" {
		phone = "Not provided"
	}
	address := sess.Address
	if address == "" {
		address = "Not provided"
	}

	return Confirmation{Name: name, Phone: phone, Address: address}, true
}

// PendingMethod renvoie le mode en attente ("" si aucun).
func (f *Flow) PendingMethod() string {
	return f.pendingMethod
}

// CancelConfirmation abandonne la confirmation : le slot est vidé.
func (f *Flow) CancelConfirmation() {
	f.pendingMethod = ""
}

// ConfirmOrder construit la commande depuis la session et un snapshot
// frais du panier, puis la délègue à l'API. Succès : panier vidé, mode
// remis à zéro, vue commandes. Échec : rien n'est muté, le message
// serveur est affiché tel quel (ou une notice réseau générique).
func (f *Flow) ConfirmOrder(ctx context.Context) bool {
	if f.sessions.Anonymous() {
		f.notifier.Notify("Login required.", "Error", gate.LevelDanger)
		return false
	}
	if f.cart.Len() == 0 {
		f.notifier.Notify("Your cart is empty!", "Error", gate.LevelDanger)
		return false
	}

	// Anti double-soumission : une seule commande en vol à la fois.
	if !f.inFlight.CompareAndSwap(false, true) {
		f.notifier.Notify("Your order is already being placed.", "Please wait", gate.LevelInfo)
		return false
	}
	defer f.inFlight.Store(false)

	sess := f.sessions.Current()
	snap := f.cart.Snapshot()

	address := sess.Address
	if address == "" {
		address = "No address provided"
	}
	method := f.pendingMethod
	if method == "" {
		method = PaymentMethodCOD
	}

	_, err := f.orders.PlaceOrder(ctx, api.OrderRequest{
		UserID:        sess.ID,
		Items:         snap.Items,
		Total:         snap.Total,
		Address:       address,
		PaymentMethod: method,
	})
	if err != nil {
		var netErr *api.NetworkError
		if errors.As(err, &netErr) {
			f.notifier.Notify("Could not connect to the server to place order.", "Network Error", gate.LevelDanger)
		} else {
			f.notifier.Notify(err.Error(), "Order Failed", gate.LevelDanger)
		}
		return false
	}

	f.notifier.Notify("Your order has been placed successfully!", "Order Confirmed", gate.LevelSuccess)
	f.cart.Clear()
	f.pendingMethod = ""
	f.gate.RequestNavigate(gate.ViewOrders)
	return true
}
