package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"

	"github.com/RootDr0id/food-delivery-app-backend/helper"
	middleware "github.com/RootDr0id/food-delivery-app-backend/middlewares"
	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/services"
	"github.com/RootDr0id/food-delivery-app-backend/storage"
)

// signatureHeader carries the gateway's signature over the raw webhook body.
const signatureHeader = "Stripe-Signature"

type OrderController struct {
	service     *services.OrderService
	orders      *storage.OrderStore
	restaurants *storage.RestaurantStore
	validate    *validator.Validate
}

func NewOrderController(service *services.OrderService, orders *storage.OrderStore, restaurants *storage.RestaurantStore) *OrderController {
	return &OrderController{
		service:     service,
		orders:      orders,
		restaurants: restaurants,
		validate:    validator.New(),
	}
}

// CreateCheckoutSession prices the customer's cart and responds with the
// hosted payment page URL.
func (c *OrderController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	var req services.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErr := c.validate.Struct(req); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	url, err := c.service.CreateCheckoutSession(ctx, uid, req)
	if err != nil {
		writeWorkflowError(w, err, "Error creating checkout session")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Checkout session created", map[string]interface{}{
		"url": url,
	})
}

// HandleWebhook consumes the payment gateway's signed callback. Signature
// verification runs over the raw request bytes, so the body is never parsed
// before it is read out whole.
func (c *OrderController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Error reading request body")
		return
	}

	err = c.service.ConfirmPayment(ctx, payload, r.Header.Get(signatureHeader))
	if err != nil {
		log.Printf("Webhook processing failed: %v", err)
		writeWorkflowError(w, err, "Error processing webhook")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Webhook processed", nil)
}

// ListMyOrders returns the authenticated customer's orders, newest first.
func (c *OrderController) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)

	orders, err := c.orders.FindByUser(ctx, uid)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error retrieving orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	helper.WriteSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

// ListRestaurantOrders returns the incoming orders of the authenticated
// owner's restaurant.
func (c *OrderController) ListRestaurantOrders(w http.ResponseWriter, r *http.Request) {
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

	orders, err := c.orders.FindByRestaurant(ctx, restaurant.Restaurant_id)
	if err != nil {
		helper.WriteError(w, http.StatusInternalServerError, "Error retrieving orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	helper.WriteSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

// UpdateOrderStatus moves an order through the delivery lifecycle; only the
// owner of the order's restaurant may do so.
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, _, uid := middleware.GetUserFromContext(r)
	orderID := mux.Vars(r)["order_id"]

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErr := c.validate.Struct(body); validationErr != nil {
		helper.WriteError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	order, err := c.service.UpdateOrderStatus(ctx, uid, orderID, body.Status)
	if err != nil {
		writeWorkflowError(w, err, "Error updating order status")
		return
	}

	helper.WriteSuccess(w, http.StatusOK, "Order status updated successfully", order)
}

// writeWorkflowError maps the order workflow error taxonomy onto HTTP statuses.
func writeWorkflowError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		helper.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidReference):
		helper.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		helper.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidSignature):
		helper.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		helper.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrGateway):
		helper.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		helper.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
