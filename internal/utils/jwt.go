package utils

import (
	"os"
	"time"

	"velora_storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signe un token pour l'utilisateur (24h).
// Le secret est lu à chaque appel, après le chargement du .env.
func GenerateJWT(user models.User) string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secret))
	return tokenString
}
