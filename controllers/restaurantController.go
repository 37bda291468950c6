package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RootDr0id/food-delivery-app-backend/helper"
	middleware "github.com/RootDr0id/food-delivery-app-backend/middlewares"
	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/services"
	"github.com/RootDr0id/food-delivery-app-backend/storage"
)

const searchPageSize = 10

type RestaurantController struct {
	restaurants *storage.RestaurantStore
	cache       *storage.SearchCache
	validate    *validator.Validate
}

func NewRestaurantController(restaurants *storage.RestaurantStore, cache *storage.SearchCache) *RestaurantController {
	return &RestaurantController{
		restaurants: restaurants,
		cache:       cache,
		validate:    validator.New(),
	}
}

// CreateMyRestaurant registers the authenticated user's restaurant. One
// restaurant per owner.
func (c *RestaurantController) CreateMyRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	var restaurant models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErr := c.validate.Struct(restaurant); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	exists, err := c.restaurants.OwnerHasRestaurant(ctx, uid)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error checking existing restaurant")
		return
	}
	if exists {
		helper.WriteError(w, http.StatusConflict, "User already owns a restaurant")
		return
	}

	restaurant.ID = primitive.NewObjectID()
	restaurant.Restaurant_id = restaurant.ID.Hex()
	restaurant.User_id = uid
	restaurant.Created_at = time.Now()
	restaurant.Updated_at = time.Now()
	assignMenuItemIDs(restaurant.Menu_items)

	if err := c.restaurants.Insert(ctx, restaurant); err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Restaurant creation failed")
		return
	}

	helper.WriteSuccess(w, http.StatusCreated, "Restaurant created successfully", restaurant)
}

func (c *RestaurantController) GetMyRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	restaurant, err := c.restaurants.FindByOwner(ctx, uid)
	if errors.Is(err, services.ErrNotFound) {
		helper.WriteError(w, http.StatusNotFound, "Restaurant not found")
		return
	} else if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error retrieving restaurant")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Restaurant retrieved successfully", restaurant)
}

func (c *RestaurantController) UpdateMyRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	var restaurant models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErr := c.validate.Struct(restaurant); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	// The menu is replaced wholesale; items the client sent without an id are new.
	assignMenuItemIDs(restaurant.Menu_items)

	updated, err := c.restaurants.Update(ctx, uid, restaurant)
	if errors.Is(err, services.ErrNotFound) {
		helper.WriteError(w, http.StatusNotFound, "Restaurant not found")
		return
	} else if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Restaurant update failed")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Restaurant updated successfully", updated)
}

func (c *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	restaurantID := mux.Vars(r)["restaurant_id"]
	if restaurantID == "" {
		helper.WriteError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	restaurant, err := c.restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, services.ErrNotFound) {
		helper.WriteError(w, http.StatusNotFound, "Restaurant not found")
		return
	} else if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error retrieving restaurant")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Restaurant retrieved successfully", restaurant)
}

// SearchRestaurants is the public city search. Responses are served
// cache-aside from Redis when a cache is configured; cache failures fall
// through to MongoDB.
func (c *RestaurantController) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	city := mux.Vars(r)["city"]
	if city == "" {
		helper.WriteError(w, http.StatusBadRequest, "Invalid city")
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	params := storage.SearchParams{
		City:        city,
		SearchQuery: r.URL.Query().Get("searchQuery"),
		SortOption:  r.URL.Query().Get("sortOption"),
		Page:        page,
		PageSize:    searchPageSize,
	}
	if cuisines := r.URL.Query().Get("selectedCuisines"); cuisines != "" {
		params.SelectedCuisines = splitCSV(cuisines)
	}

	cacheKey := storage.SearchKey(params)
	if payload, ok := c.cache.Get(ctx, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	restaurants, total, err := c.restaurants.Search(ctx, params)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error searching restaurants")
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}

	body := map[string]interface{}{
		"success":    true,
		"message":    "Restaurants retrieved successfully",
		"data":       restaurants,
		"pagination": helper.NewPagination(page, searchPageSize, total),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error encoding search results")
		return
	}
	c.cache.Set(ctx, cacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// assignMenuItemIDs gives an id to every menu item that arrived without one.
func assignMenuItemIDs(items []models.MenuItem) {
	for i := range items {
		if items[i].Menu_item_id == "" {
			items[i].Menu_item_id = uuid.NewString()
		}
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
