package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"velora_storefront/internal/storefront/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginMapsResponseToSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "u1", "email": "user@email.com", "role": "user",
			"phone": "0470", "address": "12 rue des Lilas", "token": "tok",
		})
	}))
	defer srv.Close()

	sess, err := NewClient(srv.URL).Login(context.Background(), "user@email.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.ID)
	assert.Equal(t, "user", sess.Role)
	assert.Equal(t, "tok", sess.Token)
}

func TestLoginRejectsUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// réponse 200 mais sans les champs requis
		json.NewEncoder(w).Encode(map[string]string{"email": "user@email.com"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "user@email.com", "user123")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		check   func(t *testing.T, err error)
	}{
		{"401 -> AuthError", http.StatusUnauthorized, "Invalid credentials", func(t *testing.T, err error) {
			var e *AuthError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "Invalid credentials", e.Message)
		}},
		{"403 -> AuthError", http.StatusForbidden, "Admin access only", func(t *testing.T, err error) {
			var e *AuthError
			require.ErrorAs(t, err, &e)
		}},
		{"404 -> NotFoundError", http.StatusNotFound, "Product not found", func(t *testing.T, err error) {
			var e *NotFoundError
			require.ErrorAs(t, err, &e)
		}},
		{"400 -> ValidationError", http.StatusBadRequest, "Email and password required", func(t *testing.T, err error) {
			var e *ValidationError
			require.ErrorAs(t, err, &e)
		}},
		{"500 -> ServerError verbatim", http.StatusInternalServerError, "Out of stock", func(t *testing.T, err error) {
			var e *ServerError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "Out of stock", e.Message)
			assert.Equal(t, "Out of stock", err.Error())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"message": tt.message})
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Product(context.Background(), "p1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connexion refusée

	_, err := NewClient(srv.URL).Products(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestMalformedBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Products(context.Background())
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "o1", "reference": "ref", "userId": "u1", "items": []cart.Item{}, "total": 0,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.TokenSource = func() string { return "tok" }

	_, err := c.PlaceOrder(context.Background(), OrderRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", got)
}

func TestProductListShapeValidated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// un élément sans id : propagation silencieuse interdite
		w.Write([]byte(`[{"name":"Widget","price":10}]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Products(context.Background())
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
