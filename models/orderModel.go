package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPlaced         = "placed"
	StatusPaid           = "paid"
	StatusInProgress     = "inProgress"
	StatusOutForDelivery = "outForDelivery"
	StatusDelivered      = "delivered"
)

// IsValidOrderStatus reports whether s is one of the known order statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case StatusPlaced, StatusPaid, StatusInProgress, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// DeliveryDetails is copied verbatim from the checkout request body.
type DeliveryDetails struct {
	Email        string `json:"email" bson:"email"`
	Name         string `json:"name" bson:"name"`
	AddressLine1 string `json:"address_line1" bson:"address_line1"`
	City         string `json:"city" bson:"city"`
}

// CartItem is a snapshot of a cart line at order-creation time, not a live
// reference into the restaurant's menu. Quantity keeps the string form it
// arrived in.
type CartItem struct {
	Menu_item_id string `json:"menu_item_id" bson:"menu_item_id"`
	Name         string `json:"name" bson:"name"`
	Quantity     string `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Order_id         string             `json:"order_id" bson:"order_id"`
	Restaurant_id    string             `json:"restaurant_id" bson:"restaurant_id"`
	User_id          string             `json:"user_id" bson:"user_id"`
	Status           string             `json:"status" bson:"status"`
	Delivery_details DeliveryDetails    `json:"delivery_details" bson:"delivery_details"`
	Cart_items       []CartItem         `json:"cart_items" bson:"cart_items"`
	Total_amount     int64              `json:"total_amount" bson:"total_amount"`
	Created_at       time.Time          `json:"created_at" bson:"created_at"`
	Updated_at       time.Time          `json:"updated_at" bson:"updated_at"`
}
