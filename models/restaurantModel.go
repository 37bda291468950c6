package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem prices are whole major currency units; conversion to the minor
// units the payment gateway expects happens at checkout time.
type MenuItem struct {
	Menu_item_id string `json:"menu_item_id" bson:"menu_item_id"`
	Name         string `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Price        int64  `json:"price" bson:"price" validate:"required,gt=0"`
}

type Restaurant struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty"`
	Restaurant_id           string             `json:"restaurant_id" bson:"restaurant_id"`
	User_id                 string             `json:"user_id" bson:"user_id"`
	Name                    string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City                    string             `json:"city" bson:"city" validate:"required"`
	Country                 string             `json:"country" bson:"country" validate:"required"`
	Delivery_price          int64              `json:"delivery_price" bson:"delivery_price" validate:"gte=0"`
	Estimated_delivery_time int                `json:"estimated_delivery_time" bson:"estimated_delivery_time" validate:"required,gt=0"`
	Cuisines                []string           `json:"cuisines" bson:"cuisines" validate:"required,min=1"`
	Menu_items              []MenuItem         `json:"menu_items" bson:"menu_items" validate:"required,min=1,dive"`
	Image_url               string             `json:"image_url" bson:"image_url"`
	Created_at              time.Time          `json:"created_at" bson:"created_at"`
	Updated_at              time.Time          `json:"updated_at" bson:"updated_at"`
}

// FindMenuItem resolves a menu item by id within the restaurant's own menu.
func (r *Restaurant) FindMenuItem(menuItemID string) (MenuItem, bool) {
	for _, item := range r.Menu_items {
		if item.Menu_item_id == menuItemID {
			return item, true
		}
	}
	return MenuItem{}, false
}
