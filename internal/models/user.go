package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Role     string             `bson:"role" json:"role"`
}
