package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"velora_storefront/internal/database"
	"velora_storefront/internal/models"
	"velora_storefront/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ================== COMMANDES ==================

func CreateOrder(c *gin.Context) {
	var input struct {
		UserID        string             `json:"userId"`
		Items         []models.OrderItem `json:"items"`
		Total         float64            `json:"total"`
		Address       string             `json:"address"`
		PaymentMethod string             `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order must contain at least one item"})
		return
	}

	// Une commande ne peut être passée que pour soi-même
	if c.GetString("user_id") != input.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order := models.Order{
		ID:            primitive.NewObjectID(),
		Reference:     uuid.NewString(),
		UserID:        input.UserID,
		Items:         input.Items,
		Total:         input.Total,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error placing order"})
		return
	}

	// Confirmation par e-mail, sans bloquer la réponse
	if email, ok := c.Get("email"); ok {
		if to, ok := email.(string); ok && to != "" {
			go func() {
				if err := utils.SendOrderConfirmationEmail(to, order); err != nil {
					log.Println("⚠️ Échec envoi e-mail de confirmation:", err)
				}
			}()
		}
	}

	log.Printf("✅ Commande %s créée pour user %s (%.2f)", order.Reference, order.UserID, order.Total)
	c.JSON(http.StatusCreated, order)
}

// GetUserOrders récupère les commandes d'un utilisateur, plus récentes d'abord.
func GetUserOrders(c *gin.Context) {
	userID := c.Param("userId")

	// Un utilisateur ne consulte que ses propres commandes
	if c.GetString("user_id") != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
