package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RootDr0id/food-delivery-app-backend/gateway"
	"github.com/RootDr0id/food-delivery-app-backend/models"
)

// RestaurantStore is the restaurant lookup surface the workflow needs.
type RestaurantStore interface {
	FindByID(ctx context.Context, restaurantID string) (models.Restaurant, error)
}

// OrderStore is the order persistence surface the workflow needs.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) error
	FindByID(ctx context.Context, orderID string) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	MarkPaid(ctx context.Context, orderID string, amountTotal int64) error
}

// CheckoutCartItem is one cart line of a checkout request. Quantity arrives
// as a string and is parsed here.
type CheckoutCartItem struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity" validate:"required"`
}

type CheckoutDeliveryDetails struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	City         string `json:"city" validate:"required"`
}

type CheckoutRequest struct {
	RestaurantID    string                  `json:"restaurantId" validate:"required"`
	CartItems       []CheckoutCartItem      `json:"cartItems" validate:"required,min=1,dive"`
	DeliveryDetails CheckoutDeliveryDetails `json:"deliveryDetails" validate:"required"`
}

// OrderService is the order workflow: checkout-session construction, payment
// confirmation via webhook, and owner-driven status updates. All collaborators
// are injected.
type OrderService struct {
	restaurants RestaurantStore
	orders      OrderStore
	gateway     gateway.CheckoutGateway
	frontendURL string
}

func NewOrderService(restaurants RestaurantStore, orders OrderStore, gw gateway.CheckoutGateway, frontendURL string) *OrderService {
	return &OrderService{
		restaurants: restaurants,
		orders:      orders,
		gateway:     gw,
		frontendURL: frontendURL,
	}
}

// CreateCheckoutSession prices the cart against the restaurant's menu,
// requests a hosted payment session, and persists the order in state
// "placed". The order is persisted only after the gateway returns a redirect
// URL, so a failed gateway call never leaves an order dangling.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, userID string, req CheckoutRequest) (string, error) {
	restaurant, err := s.restaurants.FindByID(ctx, req.RestaurantID)
	if err != nil {
		return "", fmt.Errorf("resolving restaurant %s: %w", req.RestaurantID, err)
	}

	order := models.Order{
		ID:            primitive.NewObjectID(),
		Restaurant_id: restaurant.Restaurant_id,
		User_id:       userID,
		Status:        models.StatusPlaced,
		Delivery_details: models.DeliveryDetails{
			Email:        req.DeliveryDetails.Email,
			Name:         req.DeliveryDetails.Name,
			AddressLine1: req.DeliveryDetails.AddressLine1,
			City:         req.DeliveryDetails.City,
		},
		Created_at: time.Now(),
		Updated_at: time.Now(),
	}
	order.Order_id = order.ID.Hex()
	for _, item := range req.CartItems {
		order.Cart_items = append(order.Cart_items, models.CartItem{
			Menu_item_id: item.MenuItemID,
			Name:         item.Name,
			Quantity:     item.Quantity,
		})
	}

	lineItems, err := buildLineItems(restaurant, req.CartItems)
	if err != nil {
		return "", err
	}

	session, err := s.gateway.CreateSession(ctx, gateway.SessionRequest{
		OrderID:      order.Order_id,
		RestaurantID: restaurant.Restaurant_id,
		LineItems:    lineItems,
		// Flat delivery fee, same major-to-minor conversion as the lines.
		ShippingAmount: restaurant.Delivery_price * 100,
		SuccessURL:     fmt.Sprintf("%s/order-status?success=true", s.frontendURL),
		CancelURL:      fmt.Sprintf("%s/detail/%s?cancelled=true", s.frontendURL, restaurant.Restaurant_id),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("%w: %v", ErrGateway, gateway.ErrNoRedirectURL)
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return "", fmt.Errorf("persisting order %s: %w", order.Order_id, err)
	}

	return session.URL, nil
}

// buildLineItems resolves every cart line against the restaurant's embedded
// menu. Any line that does not resolve aborts the whole checkout; no partial
// list is ever sent to the gateway. The display name comes from the menu
// item, not the cart; the cart's name is informational only.
func buildLineItems(restaurant models.Restaurant, cartItems []CheckoutCartItem) ([]gateway.LineItem, error) {
	lineItems := make([]gateway.LineItem, 0, len(cartItems))
	for _, item := range cartItems {
		menuItem, ok := restaurant.FindMenuItem(item.MenuItemID)
		if !ok {
			return nil, fmt.Errorf("%w: menu item %s not found on restaurant %s",
				ErrInvalidReference, item.MenuItemID, restaurant.Restaurant_id)
		}

		quantity, err := strconv.Atoi(item.Quantity)
		if err != nil || quantity < 1 {
			return nil, fmt.Errorf("%w: invalid quantity %q for menu item %s",
				ErrInvalidReference, item.Quantity, item.MenuItemID)
		}

		lineItems = append(lineItems, gateway.LineItem{
			Name: menuItem.Name,
			// Menu prices are whole major units; the gateway wants minor units.
			UnitAmount: menuItem.Price * 100,
			Quantity:   int64(quantity),
		})
	}
	return lineItems, nil
}

// ConfirmPayment verifies a webhook payload against its signature header and,
// for a checkout-completed event, transitions the referenced order from
// "placed" to "paid" with the gateway-reported total. Other event types are
// acknowledged without any state change so gateway retries of unrelated
// events are not rejected. Replaying a completed event reapplies the same
// assignment and converges to the same document.
func (s *OrderService) ConfirmPayment(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return fmt.Errorf("verifying webhook event: %w", err)
	}

	if event.Type != gateway.EventCheckoutCompleted {
		log.Printf("Ignoring webhook event of type %s", event.Type)
		return nil
	}

	order, err := s.orders.FindByID(ctx, event.OrderID)
	if err != nil {
		return fmt.Errorf("resolving order %s from webhook metadata: %w", event.OrderID, err)
	}

	if err := s.orders.MarkPaid(ctx, order.Order_id, event.AmountTotal); err != nil {
		return fmt.Errorf("marking order %s paid: %w", order.Order_id, err)
	}

	log.Printf("Order %s confirmed paid, total %d", order.Order_id, event.AmountTotal)
	return nil
}

// UpdateOrderStatus lets the owner of the order's restaurant move the order
// through the delivery lifecycle. The restaurant lookup and the owner check
// are explicit steps with distinct outcomes.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, ownerID, orderID, status string) (models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("resolving order %s: %w", orderID, err)
	}

	restaurant, err := s.restaurants.FindByID(ctx, order.Restaurant_id)
	if err != nil {
		return models.Order{}, fmt.Errorf("resolving restaurant %s: %w", order.Restaurant_id, err)
	}

	if restaurant.User_id != ownerID {
		return models.Order{}, fmt.Errorf("%w: restaurant %s is not owned by caller",
			ErrUnauthorized, restaurant.Restaurant_id)
	}

	if err := s.orders.UpdateStatus(ctx, order.Order_id, status); err != nil {
		return models.Order{}, fmt.Errorf("updating status of order %s: %w", order.Order_id, err)
	}

	order.Status = status
	order.Updated_at = time.Now()
	return order, nil
}
