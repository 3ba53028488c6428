package database

import (
	"context"
	"log"
	"time"

	"velora_storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seed crée les comptes et produits par défaut s'ils n'existent pas encore.
func Seed() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	seedUsers(ctx)
	seedProducts(ctx)
}

func seedUsers(ctx context.Context) {
	defaults := []struct {
		Email    string
		Password string
		Role     string
	}{
		{"admin@email.com", "admin123", models.RoleAdmin},
		{"user@email.com", "user123", models.RoleUser},
	}

	for _, u := range defaults {
		count, err := Users().CountDocuments(ctx, bson.M{"email": u.Email})
		if err != nil {
			log.Println("❌ Erreur vérification utilisateur seed:", err)
			continue
		}
		if count > 0 {
			continue
		}

		hashed, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		_, err = Users().InsertOne(ctx, models.User{
			Email:    u.Email,
			Password: string(hashed),
			Role:     u.Role,
		})
		if err != nil {
			log.Println("❌ Erreur création utilisateur seed:", err)
			continue
		}
		log.Printf("🆕 Compte %s créé : %s", u.Role, u.Email)
	}
}

func seedProducts(ctx context.Context) {
	count, err := Products().CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("❌ Erreur vérification produits seed:", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []interface{}{
		models.Product{
			Name:  "iPhone 15 Pro",
			Price: 129999,
			Image: "https://m.media-amazon.com/images/I/619oqSJVY5L._SX679_.jpg",
		},
		models.Product{
			Name:        "Samsung Galaxy S24 Ultra",
			Price:       119999,
			Image:       "https://m.media-amazon.com/images/I/717Q2swzhBL._SX679_.jpg",
			Description: "Samsung's flagship with 200MP camera and S-Pen.",
		},
		models.Product{
			Name:        "MacBook Air M2",
			Price:       99999,
			Image:       "https://m.media-amazon.com/images/I/71CjP9jmqZL._SX679_.jpg",
			Description: "Apple MacBook Air with M2 chip, 13.6-inch Liquid Retina display.",
		},
		models.Product{
			Name:        "Sony WH-1000XM5 Headphones",
			Price:       29999,
			Image:       "https://m.media-amazon.com/images/I/51aXvjzcukL._SX522_.jpg",
			Description: "Noise-cancelling wireless headphones with 30-hour battery life.",
		},
		models.Product{
			Name:        "Apple Watch Ultra 2",
			Price:       79999,
			Image:       "https://m.media-amazon.com/images/I/81V3wgQBeuL._SX679_.jpg",
			Description: "Apple Watch Series 9 with Always-On Retina display.",
		},
	}

	if _, err := Products().InsertMany(ctx, defaults); err != nil {
		log.Println("❌ Erreur insertion produits par défaut:", err)
		return
	}
	log.Println("✅ Produits par défaut ajoutés à la base")
}
