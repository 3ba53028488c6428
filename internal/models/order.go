package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPending = "Pending"

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference     string             `bson:"reference" json:"reference"`
	UserID        string             `bson:"user_id" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Address       string             `bson:"address" json:"address"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
