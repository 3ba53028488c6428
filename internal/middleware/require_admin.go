package middleware

import (
	"net/http"

	"velora_storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access only"})
		c.Abort()
		return
	}
	c.Next()
}
