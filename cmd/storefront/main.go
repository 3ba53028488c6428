package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"velora_storefront/internal/storefront/api"
	"velora_storefront/internal/storefront/cart"
	"velora_storefront/internal/storefront/checkout"
	"velora_storefront/internal/storefront/gate"
	"velora_storefront/internal/storefront/session"
)

// toastNotifier affiche les notices comme des toasts, en ligne.
type toastNotifier struct{}

func (toastNotifier) Notify(message, title string, level gate.Level) {
	icon := map[gate.Level]string{
		gate.LevelSuccess: "✅",
		gate.LevelInfo:    "ℹ️",
		gate.LevelWarning: "⚠️",
		gate.LevelDanger:  "❌",
	}[level]
	fmt.Printf("%s [%s] %s\n", icon, title, message)
}

// app regroupe l'état du storefront terminal.
type app struct {
	client   *api.Client
	cart     *cart.Cart
	sessions *session.Manager
	gate     *gate.Gate
	flow     *checkout.Flow
	notifier gate.Notifier

	products []api.Product
}

func main() {
	baseURL := os.Getenv("VELORA_API")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	store, err := session.NewFileStore()
	if err != nil {
		log.Fatal("❌ Impossible d'ouvrir le stockage de session:", err)
	}

	a := &app{
		client:   api.NewClient(baseURL),
		cart:     cart.New(),
		sessions: session.NewManager(store),
		notifier: toastNotifier{},
	}
	a.client.TokenSource = func() string {
		if sess := a.sessions.Current(); sess != nil {
			return sess.Token
		}
		return ""
	}

	a.gate = gate.New(a.sessions, a.notifier)
	a.flow = checkout.NewFlow(a.cart, a.sessions, a.gate, a.client, a.notifier)

	// Rendu du badge panier après chaque mutation
	a.cart.OnChange(func() {
		fmt.Printf("🛒 Cart: %d item(s) — total %.2f\n", a.cart.Len(), a.cart.Total())
	})

	// Rafraîchissements de listings à l'entrée des vues
	a.gate.OnEnter(gate.ViewProducts, a.loadProducts)
	a.gate.OnEnter(gate.ViewOrders, a.loadOrders)
	a.gate.OnEnter(gate.ViewAdminDashboard, a.loadAdmin)
	a.gate.SetLoginPrompt(func() {
		fmt.Println("🔑 Please login first (login <email> <password>)")
	})

	fmt.Println("🏬 Velora storefront —", baseURL, "(help pour les commandes)")
	if sess := a.sessions.Current(); sess != nil {
		fmt.Printf("👤 Session restaurée : %s (%s)\n", sess.Email, sess.Role)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", a.gate.Current())
		if !scanner.Scan() {
			return
		}
		if !a.dispatch(strings.Fields(scanner.Text())) {
			return
		}
	}
}

func (a *app) dispatch(args []string) bool {
	if len(args) == 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch args[0] {
	case "help":
		printHelp()
	case "home":
		a.gate.RequestNavigate(gate.ViewHome)
	case "products":
		if a.gate.RequestNavigate(gate.ViewProducts) {
			a.renderProducts()
		}
	case "product":
		a.showProduct(ctx, args[1:])
	case "add":
		a.addToCart(args[1:])
	case "cart":
		a.renderCart(a.flow.OpenCart())
	case "remove":
		if len(args) < 2 {
			fmt.Println("usage: remove <index>")
			return true
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("usage: remove <index>")
			return true
		}
		if err := a.cart.RemoveItemAt(idx - 1); err != nil {
			a.notifier.Notify("No such cart item.", "Error", gate.LevelDanger)
		}
	case "summary":
		if a.flow.ViewSummary() {
			a.renderCart(a.flow.OpenCart())
		}
	case "pay":
		a.flow.ProceedToPayment()
	case "cod":
		if conf, ok := a.flow.ChoosePaymentMethod(checkout.PaymentMethodCOD); ok {
			fmt.Printf("📦 Deliver to %s — Phone: %s — Address: %s\n", conf.Name, conf.Phone, conf.Address)
			fmt.Println("Tapez confirm pour valider, cancel pour abandonner.")
		}
	case "confirm":
		a.flow.ConfirmOrder(ctx)
	case "cancel":
		a.flow.CancelConfirmation()
		a.gate.RequestNavigate(gate.ViewOrderSummary)
	case "login":
		a.login(ctx, args[1:])
	case "register":
		a.register(ctx, args[1:])
	case "logout":
		if err := a.sessions.Logout(); err != nil {
			log.Println("⚠️ Erreur effacement session:", err)
		}
		a.gate.RequestNavigate(gate.ViewHome)
		a.notifier.Notify("You have been logged out.", "Goodbye!", gate.LevelInfo)
	case "account":
		if a.gate.RequestNavigate(gate.ViewAccount) {
			sess := a.sessions.Current()
			fmt.Printf("👤 %s (%s) — Phone: %s — Address: %s\n", sess.Email, sess.Role, orDash(sess.Phone), orDash(sess.Address))
		}
	case "update":
		a.updateAccount(ctx, args[1:])
	case "orders":
		a.gate.RequestNavigate(gate.ViewOrders)
	case "admin":
		a.gate.RequestNavigate(gate.ViewAdminDashboard)
	case "quit", "exit":
		return false
	default:
		fmt.Println("Commande inconnue (help)")
	}
	return true
}

func printHelp() {
	fmt.Println(`products            afficher le catalogue
product <n>         fiche produit
add <n> [qty]       ajouter au panier
cart / remove <n>   panier
summary / pay / cod / confirm / cancel
login <email> <pw>  register <email> <pw> [phone] [address]
account / update <champ> <valeur> / orders / admin / logout / quit`)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// ================== LISTINGS ==================

func (a *app) loadProducts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	products, err := a.client.Products(ctx)
	if err != nil {
		return err
	}
	a.products = products
	return nil
}

func (a *app) renderProducts() {
	for i, p := range a.products {
		fmt.Printf("%2d. %-30s %10.2f\n", i+1, p.Name, p.Price)
	}
}

func (a *app) loadOrders() error {
	sess := a.sessions.Current()
	if sess == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := a.client.UserOrders(ctx, sess.ID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("You haven't placed any orders yet.")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("📦 %s — %s — total %.2f — %s — %s\n",
			o.Reference, o.CreatedAt.Format("2006-01-02"), o.Total, o.Status, o.PaymentMethod)
	}
	return nil
}

func (a *app) loadAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := a.client.AdminOrders(ctx)
	if err != nil {
		return err
	}
	users, err := a.client.AdminUsers(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("=== %d commande(s) ===\n", len(orders))
	for _, o := range orders {
		fmt.Printf("User: %s | Total: %.2f | Status: %s\n", o.UserID, o.Total, o.Status)
	}
	fmt.Printf("=== %d utilisateur(s) ===\n", len(users))
	for _, u := range users {
		fmt.Printf("%s (%s)\n", u.Email, u.Role)
	}
	return nil
}

// ================== PRODUITS / PANIER ==================

func (a *app) showProduct(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: product <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.products) {
		fmt.Println("usage: product <n> (après products)")
		return
	}

	product, err := a.client.Product(ctx, a.products[n-1].ID)
	if err != nil {
		a.notifier.Notify("Could not load product details.", "Error", gate.LevelDanger)
		return
	}
	a.gate.RequestNavigate(gate.ViewProductDetail)

	desc := product.Description
	if desc == "" {
		desc = "No description available."
	}
	fmt.Printf("🛍️  %s — %.2f\n%s\n", product.Name, product.Price, desc)
}

func (a *app) addToCart(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: add <n> [qty]")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.products) {
		fmt.Println("usage: add <n> [qty] (après products)")
		return
	}
	p := a.products[n-1]

	qty := 1
	if len(args) > 1 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			fmt.Println("usage: add <n> [qty]")
			return
		}
	}

	if err := a.cart.AddItemsBulk(p.ID, p.Name, p.Price, p.Image, qty); err != nil {
		a.notifier.Notify("Quantity must be a positive number.", "Error", gate.LevelDanger)
		return
	}
	a.notifier.Notify(fmt.Sprintf("%d x %s added to cart!", qty, p.Name), "Cart Updated", gate.LevelSuccess)
}

func (a *app) renderCart(snap cart.Snapshot) {
	if len(snap.Items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for i, item := range snap.Items {
		fmt.Printf("%2d. %-30s %10.2f\n", i+1, item.Name, item.UnitPrice)
	}
	fmt.Printf("    %-30s %10.2f\n", "Total", snap.Total)
}

// ================== AUTH ==================

func (a *app) login(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}

	sess, err := a.client.Login(ctx, args[0], args[1])
	if err != nil {
		a.notifyAuthError(err, "Login Failed")
		return
	}
	if err := a.sessions.Login(sess); err != nil {
		log.Println("⚠️ Erreur persistance session:", err)
	}
	a.notifier.Notify(fmt.Sprintf("Welcome back, %s!", sess.Email), "Login Successful", gate.LevelSuccess)
	a.gate.RequestNavigate(gate.ViewHome)
}

func (a *app) register(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: register <email> <password> [phone] [address]")
		return
	}
	phone, address := "", ""
	if len(args) > 2 {
		phone = args[2]
	}
	if len(args) > 3 {
		address = strings.Join(args[3:], " ")
	}

	if _, err := a.client.Register(ctx, args[0], args[1], phone, address); err != nil {
		a.notifyAuthError(err, "Error")
		return
	}
	a.notifier.Notify("Registered successfully! Please login.", "Success", gate.LevelSuccess)
}

func (a *app) updateAccount(ctx context.Context, args []string) {
	sess := a.sessions.Current()
	if sess == nil {
		fmt.Println("🔑 Please login first (login <email> <password>)")
		return
	}
	if len(args) < 2 {
		fmt.Println("usage: update <email|password|phone|address> <valeur>")
		return
	}
	field := args[0]
	switch field {
	case "email", "password", "phone", "address":
	default:
		fmt.Println("usage: update <email|password|phone|address> <valeur>")
		return
	}

	updated, err := a.client.UpdateUser(ctx, sess.ID, map[string]string{
		field: strings.Join(args[1:], " "),
	})
	if err != nil {
		a.notifyAuthError(err, "Error")
		return
	}
	if err := a.sessions.Update(updated); err != nil {
		log.Println("⚠️ Erreur persistance session:", err)
	}
	a.notifier.Notify("Account updated successfully!", "Success", gate.LevelSuccess)
}

func (a *app) notifyAuthError(err error, title string) {
	if _, ok := err.(*api.NetworkError); ok {
		a.notifier.Notify("Could not connect to the server.", "Network Error", gate.LevelDanger)
		return
	}
	a.notifier.Notify(err.Error(), title, gate.LevelDanger)
}
