package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"velora_storefront/internal/cache"
	"velora_storefront/internal/database"
	"velora_storefront/internal/models"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== PRODUITS ==================

func GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := cache.GetProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct crée un produit (réservé admin via middleware).
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Image       string  `json:"image"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if input.Name == "" || input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and non-negative price required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	product := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Price:       input.Price,
		Image:       input.Image,
		Description: input.Description,
	}

	if _, err := database.Products().InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding product"})
		return
	}

	cache.InvalidateProducts(ctx)
	c.JSON(http.StatusCreated, product)
}

// DeleteProduct supprime un produit (réservé admin via middleware).
func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting product"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	cache.InvalidateProducts(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ProductQR renvoie un QR code PNG pointant vers la fiche produit.
func ProductQR(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/products/%s", baseURL, product.ID.Hex()), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
