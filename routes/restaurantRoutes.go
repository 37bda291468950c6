package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/RootDr0id/food-delivery-app-backend/controllers"
)

func RestaurantPublicRoutes(router *mux.Router, restaurants *controller.RestaurantController) {
	router.HandleFunc("/restaurants/search/{city}", restaurants.SearchRestaurants).Methods(http.MethodGet)
	router.HandleFunc("/restaurants/{restaurant_id}", restaurants.GetRestaurant).Methods(http.MethodGet)
}

func RestaurantProtectedRoutes(router *mux.Router, restaurants *controller.RestaurantController) {
	router.HandleFunc("/my/restaurant", restaurants.CreateMyRestaurant).Methods(http.MethodPost)
	router.HandleFunc("/my/restaurant", restaurants.GetMyRestaurant).Methods(http.MethodGet)
	router.HandleFunc("/my/restaurant", restaurants.UpdateMyRestaurant).Methods(http.MethodPatch)
}
