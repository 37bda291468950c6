package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/services"
)

// OrderStore persists order documents.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) *OrderStore {
	return &OrderStore{col: col}
}

func (s *OrderStore) Insert(ctx context.Context, order models.Order) error {
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, services.ErrNotFound)
	} else if err != nil {
		return models.Order{}, fmt.Errorf("finding order: %w", err)
	}
	return order, nil
}

// FindByUser returns a customer's orders, newest first.
func (s *OrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.findAll(ctx, bson.M{"user_id": userID})
}

// FindByRestaurant returns a restaurant's incoming orders, newest first.
func (s *OrderStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.findAll(ctx, bson.M{"restaurant_id": restaurantID})
}

func (s *OrderStore) findAll(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites the order status and bumps updated_at.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID, status string) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	result, err := s.col.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", orderID, services.ErrNotFound)
	}
	return nil
}

// MarkPaid is the payment-confirmation write: status becomes "paid" and the
// gateway-reported total is recorded. The assignment is a plain overwrite, so
// replays of the same confirmation converge to the same document.
func (s *OrderStore) MarkPaid(ctx context.Context, orderID string, amountTotal int64) error {
	update := bson.M{"$set": bson.M{
		"status":       models.StatusPaid,
		"total_amount": amountTotal,
		"updated_at":   time.Now(),
	}}

	result, err := s.col.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("marking order paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", orderID, services.ErrNotFound)
	}
	return nil
}
