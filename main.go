package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RootDr0id/food-delivery-app-backend/config"
	controller "github.com/RootDr0id/food-delivery-app-backend/controllers"
	"github.com/RootDr0id/food-delivery-app-backend/gateway"
	middleware "github.com/RootDr0id/food-delivery-app-backend/middlewares"
	"github.com/RootDr0id/food-delivery-app-backend/routes"
	"github.com/RootDr0id/food-delivery-app-backend/services"
	"github.com/RootDr0id/food-delivery-app-backend/storage"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	client := config.DBinstance(cfg)

	userStore := storage.NewUserStore(config.OpenCollection(client, cfg, "user"))
	restaurantStore := storage.NewRestaurantStore(config.OpenCollection(client, cfg, "restaurant"))
	orderStore := storage.NewOrderStore(config.OpenCollection(client, cfg, "order"))
	searchCache := storage.NewSearchCache(cfg.RedisAddr)
	if searchCache == nil {
		log.Println("REDIS_ADDR not set, search caching disabled")
	}

	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	orderService := services.NewOrderService(restaurantStore, orderStore, stripeGateway, cfg.FrontendURL)

	userController := controller.NewUserController(userStore)
	restaurantController := controller.NewRestaurantController(restaurantStore, searchCache)
	orderController := controller.NewOrderController(orderService, orderStore, restaurantStore)

	router := mux.NewRouter()

	// Public Routes (No Authentication)
	routes.UserPublicRoutes(router, userController)
	routes.RestaurantPublicRoutes(router, restaurantController)
	routes.OrderPublicRoutes(router, orderController)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.UserProtectedRoutes(securedRoutes, userController)
	routes.RestaurantProtectedRoutes(securedRoutes, restaurantController)
	routes.OrderProtectedRoutes(securedRoutes, orderController)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
