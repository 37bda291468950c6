package controller

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RootDr0id/food-delivery-app-backend/gateway"
	"github.com/RootDr0id/food-delivery-app-backend/models"
	"github.com/RootDr0id/food-delivery-app-backend/services"
)

type stubRestaurants struct{}

func (stubRestaurants) FindByID(_ context.Context, restaurantID string) (models.Restaurant, error) {
	return models.Restaurant{}, fmt.Errorf("restaurant %s: %w", restaurantID, services.ErrNotFound)
}

type memOrders struct {
	orders map[string]models.Order
}

func (m *memOrders) Insert(_ context.Context, order models.Order) error {
	m.orders[order.Order_id] = order
	return nil
}

func (m *memOrders) FindByID(_ context.Context, orderID string) (models.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, services.ErrNotFound)
	}
	return order, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, orderID, status string) error {
	order := m.orders[orderID]
	order.Status = status
	m.orders[orderID] = order
	return nil
}

func (m *memOrders) MarkPaid(_ context.Context, orderID string, amountTotal int64) error {
	order := m.orders[orderID]
	order.Status = models.StatusPaid
	order.Total_amount = amountTotal
	m.orders[orderID] = order
	return nil
}

// capturingGateway records what the webhook handler hands to signature
// verification.
type capturingGateway struct {
	payload   []byte
	signature string
	event     gateway.Event
	verifyErr error
}

func (g *capturingGateway) CreateSession(context.Context, gateway.SessionRequest) (gateway.SessionResult, error) {
	return gateway.SessionResult{}, nil
}

func (g *capturingGateway) VerifyEvent(payload []byte, signature string) (gateway.Event, error) {
	g.payload = payload
	g.signature = signature
	if g.verifyErr != nil {
		return gateway.Event{}, g.verifyErr
	}
	return g.event, nil
}

func newWebhookController(orders *memOrders, gw *capturingGateway) *OrderController {
	service := services.NewOrderService(stubRestaurants{}, orders, gw, "http://localhost:5173")
	return NewOrderController(service, nil, nil)
}

func TestHandleWebhookPassesRawBody(t *testing.T) {
	orders := &memOrders{orders: map[string]models.Order{
		"order1": {Order_id: "order1", Status: models.StatusPlaced},
	}}
	gw := &capturingGateway{event: gateway.Event{
		Type:        gateway.EventCheckoutCompleted,
		OrderID:     "order1",
		AmountTotal: 80000,
	}}
	c := newWebhookController(orders, gw)

	// Whitespace and key order must survive untouched; the signature is
	// computed over these exact bytes.
	rawBody := []byte("{\n  \"id\": \"evt_1\",   \"object\":\"event\"\n}")
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(rawBody))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()

	c.HandleWebhook(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Equal(gw.payload, rawBody) {
		t.Error("gateway did not receive the raw request bytes")
	}
	if gw.signature != "t=1,v1=abc" {
		t.Errorf("signature header = %q, want pass-through", gw.signature)
	}
	if got := orders.orders["order1"]; got.Status != models.StatusPaid || got.Total_amount != 80000 {
		t.Errorf("order after webhook = %+v, want paid with total 80000", got)
	}
}

func TestHandleWebhookStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		gw         *capturingGateway
		wantStatus int
	}{
		{
			"invalid signature",
			&capturingGateway{verifyErr: fmt.Errorf("%w: nope", gateway.ErrInvalidSignature)},
			http.StatusBadRequest,
		},
		{
			"unknown order",
			&capturingGateway{event: gateway.Event{Type: gateway.EventCheckoutCompleted, OrderID: "missing"}},
			http.StatusNotFound,
		},
		{
			"unrelated event type",
			&capturingGateway{event: gateway.Event{Type: "charge.refunded"}},
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &memOrders{orders: map[string]models.Order{}}
			c := newWebhookController(orders, tt.gw)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader([]byte(`{}`)))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")
			rec := httptest.NewRecorder()

			c.HandleWebhook(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
