package main

import (
	"log"
	"os"
	"time"

	"velora_storefront/internal/config"
	"velora_storefront/internal/database"
	"velora_storefront/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseMongo()

	// Comptes et produits par défaut
	database.Seed()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("🚀 Serveur Velora lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}
