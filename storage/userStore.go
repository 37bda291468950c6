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

// UserStore persists user profiles keyed by user_id.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("counting users by email: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) Insert(ctx context.Context, user models.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("user with email %s: %w", email, services.ErrNotFound)
	} else if err != nil {
		return models.User{}, fmt.Errorf("finding user by email: %w", err)
	}
	return user, nil
}

func (s *UserStore) FindByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("user %s: %w", userID, services.ErrNotFound)
	} else if err != nil {
		return models.User{}, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the given field updates to the user document and
// bumps updated_at.
func (s *UserStore) UpdateProfile(ctx context.Context, userID string, fields bson.D) (models.User, error) {
	fields = append(fields, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.D{{Key: "$set", Value: fields}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("updating user profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.User{}, fmt.Errorf("user %s: %w", userID, services.ErrNotFound)
	}

	return s.FindByID(ctx, userID)
}

// UpdateTokens stores freshly issued tokens on the user document.
func (s *UserStore) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	update := bson.D{
		{Key: "token", Value: token},
		{Key: "refresh_token", Value: refreshToken},
		{Key: "updated_at", Value: time.Now()},
	}

	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.D{{Key: "$set", Value: update}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("updating user tokens: %w", err)
	}
	return nil
}
