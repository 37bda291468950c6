package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/services"
)

// SearchParams describe a city-scoped restaurant search.
type SearchParams struct {
	City             string
	SearchQuery      string
	SelectedCuisines []string
	SortOption       string
	Page             int
	PageSize         int
}

// RestaurantStore persists restaurant profiles with their embedded menus.
type RestaurantStore struct {
	col *mongo.Collection
}

func NewRestaurantStore(col *mongo.Collection) *RestaurantStore {
	return &RestaurantStore{col: col}
}

func (s *RestaurantStore) Insert(ctx context.Context, restaurant models.Restaurant) error {
	if _, err := s.col.InsertOne(ctx, restaurant); err != nil {
		return fmt.Errorf("inserting restaurant: %w", err)
	}
	return nil
}

func (s *RestaurantStore) FindByID(ctx context.Context, restaurantID string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.col.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Restaurant{}, fmt.Errorf("restaurant %s: %w", restaurantID, services.ErrNotFound)
	} else if err != nil {
		return models.Restaurant{}, fmt.Errorf("finding restaurant: %w", err)
	}
	return restaurant, nil
}

// FindByOwner returns the restaurant owned by the given user. Each owner has
// at most one restaurant.
func (s *RestaurantStore) FindByOwner(ctx context.Context, userID string) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Restaurant{}, fmt.Errorf("restaurant of user %s: %w", userID, services.ErrNotFound)
	} else if err != nil {
		return models.Restaurant{}, fmt.Errorf("finding restaurant by owner: %w", err)
	}
	return restaurant, nil
}

func (s *RestaurantStore) OwnerHasRestaurant(ctx context.Context, userID string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("counting restaurants by owner: %w", err)
	}
	return count > 0, nil
}

// Update overwrites the mutable restaurant fields for the given owner and
// bumps updated_at.
func (s *RestaurantStore) Update(ctx context.Context, userID string, restaurant models.Restaurant) (models.Restaurant, error) {
	update := bson.D{
		{Key: "name", Value: restaurant.Name},
		{Key: "city", Value: restaurant.City},
		{Key: "country", Value: restaurant.Country},
		{Key: "delivery_price", Value: restaurant.Delivery_price},
		{Key: "estimated_delivery_time", Value: restaurant.Estimated_delivery_time},
		{Key: "cuisines", Value: restaurant.Cuisines},
		{Key: "menu_items", Value: restaurant.Menu_items},
		{Key: "updated_at", Value: time.Now()},
	}
	if restaurant.Image_url != "" {
		update = append(update, bson.E{Key: "image_url", Value: restaurant.Image_url})
	}

	result, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.D{{Key: "$set", Value: update}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("updating restaurant: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.Restaurant{}, fmt.Errorf("restaurant of user %s: %w", userID, services.ErrNotFound)
	}

	return s.FindByOwner(ctx, userID)
}

// Search runs a paginated, sorted city search.
func (s *RestaurantStore) Search(ctx context.Context, params SearchParams) ([]models.Restaurant, int64, error) {
	filter := buildSearchFilter(params)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting search results: %w", err)
	}

	skip := int64((params.Page - 1) * params.PageSize)
	opts := options.Find().
		SetSort(searchSort(params.SortOption)).
		SetSkip(skip).
		SetLimit(int64(params.PageSize))

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("searching restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []models.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, 0, fmt.Errorf("decoding search results: %w", err)
	}

	return restaurants, total, nil
}

// buildSearchFilter matches the city exactly (case-insensitive), requires
// every selected cuisine, and applies the free-text query against the
// restaurant name and cuisine list.
func buildSearchFilter(params SearchParams) bson.M {
	filter := bson.M{
		"city": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(params.City) + "$", Options: "i"},
	}

	if len(params.SelectedCuisines) > 0 {
		cuisineRegexes := make([]primitive.Regex, 0, len(params.SelectedCuisines))
		for _, cuisine := range params.SelectedCuisines {
			cuisineRegexes = append(cuisineRegexes, primitive.Regex{
				Pattern: "^" + regexp.QuoteMeta(cuisine) + "$",
				Options: "i",
			})
		}
		filter["cuisines"] = bson.M{"$all": cuisineRegexes}
	}

	if params.SearchQuery != "" {
		queryRegex := primitive.Regex{Pattern: regexp.QuoteMeta(params.SearchQuery), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": queryRegex},
			{"cuisines": bson.M{"$in": []primitive.Regex{queryRegex}}},
		}
	}

	return filter
}

func searchSort(option string) bson.D {
	switch option {
	case "deliveryPrice":
		return bson.D{{Key: "delivery_price", Value: 1}}
	case "estimatedDeliveryTime":
		return bson.D{{Key: "estimated_delivery_time", Value: 1}}
	default:
		// Best match: most recently updated first.
		return bson.D{{Key: "updated_at", Value: -1}}
	}
}
