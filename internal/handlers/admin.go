package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"velora_storefront/internal/database"
	"velora_storefront/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== ADMIN ==================

// GetAllOrders liste toutes les commandes (réservé admin via middleware).
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetAllUsers liste tous les utilisateurs (réservé admin via middleware).
func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUserByEmail supprime un utilisateur par e-mail (réservé admin).
func DeleteUserByEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Users().DeleteOne(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting user"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	log.Printf("🗑️ Utilisateur supprimé : %s", input.Email)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "email": input.Email})
}
