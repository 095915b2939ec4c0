// Package stripepay wraps the Stripe SDK calls used by the payment flow:
// hosted checkout session creation and webhook event verification.
package stripepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	CurrencyUSD = string(stripe.CurrencyUSD)

	// MetadataBookingID correlates a checkout session with its booking.
	MetadataBookingID = "booking_id"

	SignatureHeader = "Stripe-Signature"
)

var ErrNotConfigured = errors.New("stripe secret key is not configured")

type CheckoutRequest struct {
	BookingID     string
	Title         string
	Description   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Client struct {
	api *client.API
}

// NewClient returns a client bound to secretKey. A nil backends value uses
// the default Stripe endpoints.
func NewClient(secretKey string, backends *stripe.Backends) *Client {
	if secretKey == "" {
		return &Client{}
	}

	api := &client.API{}
	api.Init(secretKey, backends)

	return &Client{api: api}
}

func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	const op = "lib.payment.stripepay.CreateCheckoutSession"

	if !c.Configured() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	params := SessionParams(req)
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func SessionParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	currency := req.Currency
	if currency == "" {
		currency = CurrencyUSD
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.Title),
	}
	if req.Description != "" {
		product.Description = stripe.String(req.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			string(stripe.PaymentMethodTypeCard),
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(currency),
					ProductData: product,
					UnitAmount:  stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	params.AddMetadata(MetadataBookingID, req.BookingID)

	return params
}

// ConstructEvent verifies the signature over the untouched payload bytes and
// only then decodes the event. API version mismatches between the account
// and the SDK are tolerated.
func ConstructEvent(payload []byte, signature, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// CompletedSession decodes the checkout session carried by a
// checkout.session.completed event.
func CompletedSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	const op = "lib.payment.stripepay.CompletedSession"

	if event.Data == nil {
		return nil, fmt.Errorf("%s: event %s has no data", op, event.ID)
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%s: failed to decode checkout session: %w", op, err)
	}

	return &s, nil
}

// PaymentIntentID returns the id of the session's payment intent, which
// arrives unexpanded on webhook payloads.
func PaymentIntentID(s *stripe.CheckoutSession) string {
	if s == nil || s.PaymentIntent == nil {
		return ""
	}
	return s.PaymentIntent.ID
}
