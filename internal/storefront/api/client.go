package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"velora_storefront/internal/storefront/cart"
	"velora_storefront/internal/storefront/session"
)

// Product est le contrat de réponse des routes produits.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Order est le contrat de réponse des routes commandes.
type Order struct {
	ID            string      `json:"id"`
	Reference     string      `json:"reference"`
	UserID        string      `json:"userId"`
	Items         []cart.Item `json:"items"`
	Total         float64     `json:"total"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderRequest est la charge utile de POST /api/orders.
type OrderRequest struct {
	UserID        string      `json:"userId"`
	Items         []cart.Item `json:"items"`
	Total         float64     `json:"total"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
}

// User est le contrat de réponse des routes admin utilisateurs.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Client est le client REST typé du serveur Velora. TokenSource fournit
// le bearer token de la session active ("" si anonyme).
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	TokenSource func() string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do exécute l'appel et traduit tout échec dans la taxonomie du paquet.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Message: err.Error()}
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.TokenSource != nil {
		if token := c.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
			payload.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Message: payload.Message}
		case http.StatusNotFound:
			return &NotFoundError{Message: payload.Message}
		case http.StatusBadRequest:
			return &ValidationError{Message: payload.Message}
		default:
			return &ServerError{Status: resp.StatusCode, Message: payload.Message}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: err}
	}
	return nil
}

// ================== AUTH ==================

type authResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Token   string `json:"token"`
}

func (r *authResponse) toSession() (session.Session, error) {
	// contrat validé : pas de propagation silencieuse de champs absents
	if r.ID == "" || r.Email == "" || r.Role == "" {
		return session.Session{}, &ValidationError{Message: "unexpected auth response shape"}
	}
	return session.Session{
		ID:      r.ID,
		Email:   r.Email,
		Role:    r.Role,
		Phone:   r.Phone,
		Address: r.Address,
		Token:   r.Token,
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return session.Session{}, err
	}
	return resp.toSession()
}

func (c *Client) Register(ctx context.Context, email, password, phone, address string) (session.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"phone":    phone,
		"address":  address,
	}, &resp)
	if err != nil {
		return session.Session{}, err
	}
	return resp.toSession()
}

// UpdateUser met à jour le compte ; seuls les champs non vides partent.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]string) (session.Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPut, "/api/users/"+id, fields, &resp)
	if err != nil {
		return session.Session{}, err
	}
	return resp.toSession()
}

// ================== PRODUITS ==================

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == "" || p.Name == "" {
			return nil, &ValidationError{Message: "unexpected product shape"}
		}
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return Product{}, err
	}
	if product.ID == "" || product.Name == "" {
		return Product{}, &ValidationError{Message: "unexpected product shape"}
	}
	return product, nil
}

func (c *Client) CreateProduct(ctx context.Context, name string, price float64, image, description string) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        name,
		"price":       price,
		"image":       image,
		"description": description,
	}, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

// ================== COMMANDES ==================

func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return Order{}, err
	}
	if order.ID == "" {
		return Order{}, &ValidationError{Message: "unexpected order shape"}
	}
	return order, nil
}

func (c *Client) UserOrders(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+userID, nil, &orders)
	return orders, err
}

// ================== ADMIN ==================

func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &orders)
	return orders, err
}

func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users)
	return users, err
}

func (c *Client) DeleteUserByEmail(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/users", map[string]string{"email": email}, nil)
}
