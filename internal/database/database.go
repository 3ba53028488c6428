package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Variables Globales ---
var (
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client
)

// Users retourne la collection users.
func Users() *mongo.Collection { return MongoDB.Collection("users") }

// Products retourne la collection products.
func Products() *mongo.Collection { return MongoDB.Collection("products") }

// Orders retourne la collection orders.
func Orders() *mongo.Collection { return MongoDB.Collection("orders") }

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Initialiser MongoDB
	connectMongo(ctx)

	// 2. Initialiser Redis
	connectRedis(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "velora"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	Mongo = client
	MongoDB = client.Database(dbName)
	log.Println("✅ Connecté à MongoDB :", dbName)
}

// CloseMongo ferme la connexion MongoDB.
func CloseMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if Mongo != nil {
		if err := Mongo.Disconnect(ctx); err != nil {
			log.Println("🔌 Erreur fermeture MongoDB:", err)
			return
		}
		log.Println("🔌 Connexion MongoDB fermée")
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}
