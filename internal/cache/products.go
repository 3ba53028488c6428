package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velora_storefront/internal/database"
	"velora_storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/singleflight"
)

const (
	productListKey = "products:all"
	ProductListTTL = 10 * time.Minute
)

// Empêche une ruée sur Mongo quand le cache expire
var sfg singleflight.Group

// GetProducts récupère la liste des produits depuis Redis, sinon MongoDB.
func GetProducts(ctx context.Context) ([]models.Product, error) {
	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, productListKey).Result()
	if err == nil {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	// 2. Récupérer de MongoDB (une seule requête partagée par clé)
	v, err, _ := sfg.Do(productListKey, func() (interface{}, error) {
		cursor, err := database.Products().Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		products := []models.Product{}
		if err := cursor.All(ctx, &products); err != nil {
			return nil, err
		}

		// 3. Mettre en cache
		if jsonData, err := json.Marshal(products); err == nil {
			if err := database.Redis.Set(ctx, productListKey, jsonData, ProductListTTL).Err(); err != nil {
				log.Println("⚠️ Erreur mise en cache produits:", err)
			}
		}

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]models.Product), nil
}

// InvalidateProducts purge la liste en cache après une mutation.
func InvalidateProducts(ctx context.Context) {
	if err := database.Redis.Del(ctx, productListKey).Err(); err != nil {
		log.Println("⚠️ Erreur invalidation cache produits:", err)
	}
}
