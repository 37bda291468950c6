package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	controller "github.com/RootDr0id/food-delivery-app-backend/controllers"
)

func OrderPublicRoutes(router *mux.Router, orders *controller.OrderController) {
	// The gateway posts here; the body must reach the handler unparsed.
	router.HandleFunc("/webhooks/payment", orders.HandleWebhook).Methods(http.MethodPost)
}

func OrderProtectedRoutes(router *mux.Router, orders *controller.OrderController) {
	router.HandleFunc("/orders/checkout/create-checkout-session", orders.CreateCheckoutSession).Methods(http.MethodPost)
	router.HandleFunc("/orders", orders.ListMyOrders).Methods(http.MethodGet)

	router.HandleFunc("/my/restaurant/orders", orders.ListRestaurantOrders).Methods(http.MethodGet)
	router.HandleFunc("/my/restaurant/orders/{order_id}/status", orders.UpdateOrderStatus).Methods(http.MethodPatch)
}
