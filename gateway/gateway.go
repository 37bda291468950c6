package gateway

import (
	"context"
	"errors"
)

// EventCheckoutCompleted is the only event type that drives a state change.
const EventCheckoutCompleted = "checkout.session.completed"

var (
	// ErrInvalidSignature means the webhook payload failed signature verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrNoRedirectURL means the gateway created a session without a hosted page URL.
	ErrNoRedirectURL = errors.New("gateway returned no redirect URL")
)

// LineItem is one priced line of a checkout session. UnitAmount is in minor
// currency units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionRequest describes a hosted one-time-payment checkout session. The
// order and restaurant ids travel as session metadata; they are the only
// binding between the gateway's asynchronous callback and the order record.
type SessionRequest struct {
	OrderID        string
	RestaurantID   string
	LineItems      []LineItem
	ShippingAmount int64
	SuccessURL     string
	CancelURL      string
}

// SessionResult carries the hosted payment page the customer is redirected to.
type SessionResult struct {
	URL string
}

// Event is a verified webhook event in gateway-neutral form. OrderID and
// AmountTotal are only populated for checkout-completed events.
type Event struct {
	Type        string
	OrderID     string
	AmountTotal int64
}

// CheckoutGateway is the payment provider seam. It is injected into the
// order workflow so tests can substitute a double.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (SessionResult, error)
	VerifyEvent(payload []byte, signature string) (Event, error)
}
