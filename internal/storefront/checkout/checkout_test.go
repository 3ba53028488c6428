package checkout

import (
	"context"
	"errors"
	"testing"

	"velora_storefront/internal/storefront/api"
	"velora_storefront/internal/storefront/cart"
	"velora_storefront/internal/storefront/gate"
	"velora_storefront/internal/storefront/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notice struct {
	Message string
	Title   string
	Level   gate.Level
}

type mockNotifier struct {
	notices []notice
}

func (m *mockNotifier) Notify(message, title string, level gate.Level) {
	m.notices = append(m.notices, notice{message, title, level})
}

func (m *mockNotifier) last() notice {
	return m.notices[len(m.notices)-1]
}

type mockPlacer struct {
	calls   int
	lastReq api.OrderRequest
	err     error
	// appelé pendant PlaceOrder, pour simuler un second clic en vol
	during func()
}

func (m *mockPlacer) PlaceOrder(_ context.Context, req api.OrderRequest) (api.Order, error) {
	m.calls++
	m.lastReq = req
	if m.during != nil {
		fn := m.during
		m.during = nil
		fn()
	}
	if m.err != nil {
		return api.Order{}, m.err
	}
	return api.Order{ID: "o1", Reference: "ref-1", UserID: req.UserID, Items: req.Items, Total: req.Total}, nil
}

type fixture struct {
	cart     *cart.Cart
	sessions *session.Manager
	gate     *gate.Gate
	placer   *mockPlacer
	notifier *mockNotifier
	flow     *Flow
}

func newFixture(t *testing.T, sess *session.Session) *fixture {
	t.Helper()
	store := session.NewMemoryStore()
	if sess != nil {
		require.NoError(t, store.Save(sess))
	}

	f := &fixture{
		cart:     cart.New(),
		sessions: session.NewManager(store),
		placer:   &mockPlacer{},
		notifier: &mockNotifier{},
	}
	f.gate = gate.New(f.sessions, f.notifier)
	f.flow = NewFlow(f.cart, f.sessions, f.gate, f.placer, f.notifier)
	return f
}

func userSession() *session.Session {
	return &session.Session{
		ID:      "u1",
		Email:   "user@email.com",
		Role:    session.RoleUser,
		Phone:   "0470123456",
		Address: "12 rue des Lilas",
		Token:   "tok",
	}
}

func TestViewSummaryRequiresNonEmptyCart(t *testing.T) {
	f := newFixture(t, userSession())

	assert.False(t, f.flow.ViewSummary())
	assert.Equal(t, "Your cart is empty!", f.notifier.last().Message)
	assert.NotEqual(t, gate.ViewOrderSummary, f.gate.Current())

	f.cart.AddItem("p1", "Widget", 100, "")
	assert.True(t, f.flow.ViewSummary())
	assert.Equal(t, gate.ViewOrderSummary, f.gate.Current())
}

func TestOpenCartReturnsSnapshot(t *testing.T) {
	f := newFixture(t, nil)
	f.cart.AddItem("p1", "Widget", 100, "")

	snap := f.flow.OpenCart()
	f.cart.AddItem("p2", "Gadget", 50, "")

	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 100.0, snap.Total)
}

// Scénario : anonyme qui tente récapitulatif → paiement.
func TestAnonymousCannotProceedToPayment(t *testing.T) {
	f := newFixture(t, nil)
	f.cart.AddItem("p1", "Widget", 100, "")

	assert.False(t, f.flow.ProceedToPayment())
	assert.Equal(t, "Login Required", f.notifier.last().Title)
	assert.Equal(t, 1, f.cart.Len(), "panier inchangé")
	assert.Equal(t, 0, f.placer.calls, "aucun appel réseau")
	assert.NotEqual(t, gate.ViewPayment, f.gate.Current())
}

func TestProceedToPaymentDistinguishesEmptyCart(t *testing.T) {
	f := newFixture(t, userSession())

	assert.False(t, f.flow.ProceedToPayment())
	assert.Equal(t, "Your cart is empty!", f.notifier.last().Message)

	f.cart.AddItem("p1", "Widget", 100, "")
	assert.True(t, f.flow.ProceedToPayment())
	assert.Equal(t, gate.ViewPayment, f.gate.Current())
}

func TestChoosePaymentMethodBuildsConfirmation(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")

	conf, ok := f.flow.ChoosePaymentMethod(PaymentMethodCOD)
	require.True(t, ok)
	assert.Equal(t, "user", conf.Name)
	assert.Equal(t, "0470123456", conf.Phone)
	assert.Equal(t, "12 rue des Lilas", conf.Address)
	assert.Equal(t, PaymentMethodCOD, f.flow.PendingMethod())
}

func TestConfirmationPlaceholdersWhenMissing(t *testing.T) {
	f := newFixture(t, &session.Session{ID: "u1", Email: "user@email.com", Role: session.RoleUser})
	f.cart.AddItem("p1", "Widget", 100, "")

	conf, ok := f.flow.ChoosePaymentMethod(PaymentMethodCOD)
	require.True(t, ok)
	assert.Equal(t, "Not provided", conf.Phone)
	assert.Equal(t, "Not provided", conf.Address)
}

func TestCancelConfirmationClearsPendingMethod(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")

	_, ok := f.flow.ChoosePaymentMethod(PaymentMethodCOD)
	require.True(t, ok)

	f.flow.CancelConfirmation()
	assert.Empty(t, f.flow.PendingMethod())
}

// Scénario : commande confirmée avec succès.
func TestConfirmOrderSuccess(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")
	f.cart.AddItem("p2", "Gadget", 50, "")
	_, ok := f.flow.ChoosePaymentMethod(PaymentMethodCOD)
	require.True(t, ok)

	require.True(t, f.flow.ConfirmOrder(context.Background()))

	assert.Equal(t, 1, f.placer.calls)
	assert.Equal(t, "u1", f.placer.lastReq.UserID)
	assert.Len(t, f.placer.lastReq.Items, 2)
	assert.Equal(t, 150.0, f.placer.lastReq.Total)
	assert.Equal(t, "12 rue des Lilas", f.placer.lastReq.Address)
	assert.Equal(t, PaymentMethodCOD, f.placer.lastReq.PaymentMethod)

	assert.Equal(t, 0, f.cart.Len(), "panier vidé après succès")
	assert.Empty(t, f.flow.PendingMethod())
	assert.Equal(t, gate.ViewOrders, f.gate.Current())
	assert.Equal(t, "Order Confirmed", f.notifier.last().Title)
}

// Scénario : le serveur répond {message:"Out of stock"}.
func TestConfirmOrderFailureIsNonDestructive(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")
	f.cart.AddItem("p2", "Gadget", 50, "")
	_, ok := f.flow.ChoosePaymentMethod(PaymentMethodCOD)
	require.True(t, ok)
	f.placer.err = &api.ServerError{Status: 500, Message: "Out of stock"}

	before := f.gate.Current()
	assert.False(t, f.flow.ConfirmOrder(context.Background()))

	assert.Equal(t, 2, f.cart.Len(), "le panier garde ses 2 articles")
	assert.Equal(t, PaymentMethodCOD, f.flow.PendingMethod(), "le mode choisi reste en place")
	assert.Equal(t, before, f.gate.Current(), "pas de navigation sur échec")
	assert.Equal(t, "Out of stock", f.notifier.last().Message, "message serveur tel quel")
}

func TestConfirmOrderNetworkFailureGenericNotice(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")
	f.placer.err = &api.NetworkError{Err: errors.New("connection refused")}

	assert.False(t, f.flow.ConfirmOrder(context.Background()))
	assert.Equal(t, "Could not connect to the server to place order.", f.notifier.last().Message)
	assert.Equal(t, 1, f.cart.Len())
}

func TestConfirmOrderRequiresSessionAndItems(t *testing.T) {
	anon := newFixture(t, nil)
	anon.cart.AddItem("p1", "Widget", 100, "")
	assert.False(t, anon.flow.ConfirmOrder(context.Background()))
	assert.Equal(t, 0, anon.placer.calls)

	empty := newFixture(t, userSession())
	assert.False(t, empty.flow.ConfirmOrder(context.Background()))
	assert.Equal(t, 0, empty.placer.calls)
}

func TestConfirmOrderDefaultsWhenUnset(t *testing.T) {
	f := newFixture(t, &session.Session{ID: "u1", Email: "user@email.com", Role: session.RoleUser})
	f.cart.AddItem("p1", "Widget", 100, "")

	// pas de ChoosePaymentMethod, pas d'adresse en session
	require.True(t, f.flow.ConfirmOrder(context.Background()))
	assert.Equal(t, PaymentMethodCOD, f.placer.lastReq.PaymentMethod)
	assert.Equal(t, "No address provided", f.placer.lastReq.Address)
}

// Un second clic pendant l'appel en vol ne déclenche pas de seconde
// commande.
func TestDoubleSubmissionRejectedWhileInFlight(t *testing.T) {
	f := newFixture(t, userSession())
	f.cart.AddItem("p1", "Widget", 100, "")

	var secondResult bool
	f.placer.during = func() {
		secondResult = f.flow.ConfirmOrder(context.Background())
	}

	require.True(t, f.flow.ConfirmOrder(context.Background()))
	assert.False(t, secondResult)
	assert.Equal(t, 1, f.placer.calls)
}
