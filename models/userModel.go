package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	User_id       string             `json:"user_id" bson:"user_id"`
	Name          *string            `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email         *string            `json:"email" bson:"email" validate:"required,email"`
	Password      *string            `json:"password" bson:"password" validate:"required,min=6"`
	AddressLine1  *string            `json:"address_line1" bson:"address_line1"`
	City          *string            `json:"city" bson:"city"`
	Country       *string            `json:"country" bson:"country"`
	Token         *string            `json:"token" bson:"token"`
	Refresh_Token *string            `json:"refresh_token" bson:"refresh_token"`
	Created_at    time.Time          `json:"created_at" bson:"created_at"`
	Updated_at    time.Time          `json:"updated_at" bson:"updated_at"`
}
