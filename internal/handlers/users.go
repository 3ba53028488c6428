package handlers

import (
	"context"
	"net/http"
	"time"

	"velora_storefront/internal/database"
	"velora_storefront/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUser met à jour le profil (champs fournis uniquement).
func UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	// Un utilisateur ne modifie que son propre compte
	if c.GetString("user_id") != c.Param("id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updates := bson.M{}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		updates["password"] = string(hashed)
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated models.User
	err = database.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      updated.ID.Hex(),
		"email":   updated.Email,
		"role":    updated.Role,
		"phone":   updated.Phone,
		"address": updated.Address,
	})
}
