package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeGateway implements CheckoutGateway over the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

// CreateSession creates a hosted one-time-payment checkout session and
// returns its redirect URL. The delivery fee rides along as a fixed-amount
// shipping option rather than a line item.
func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (SessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(li.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItems,
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripe.String("Delivery"),
					Type:        stripe.String("fixed_amount"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(req.ShippingAmount),
						Currency: stripe.String(string(stripe.CurrencyUSD)),
					},
				},
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("restaurant_id", req.RestaurantID)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return SessionResult{}, fmt.Errorf("creating checkout session: %w", err)
	}
	if sess.URL == "" {
		return SessionResult{}, ErrNoRedirectURL
	}

	return SessionResult{URL: sess.URL}, nil
}

// VerifyEvent checks the signature header against the raw payload bytes and
// decodes the event. Event types other than checkout completion come back
// with only Type set; callers decide what to ignore.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if string(event.Type) != EventCheckoutCompleted {
		return Event{Type: string(event.Type)}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return Event{}, fmt.Errorf("decoding checkout session from event: %w", err)
	}

	return Event{
		Type:        string(event.Type),
		OrderID:     sess.Metadata["order_id"],
		AmountTotal: sess.AmountTotal,
	}, nil
}
