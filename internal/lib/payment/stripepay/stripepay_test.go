package stripepay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func parisTour() CheckoutRequest {
	return CheckoutRequest{
		BookingID:     "b1",
		Title:         "Paris Tour",
		Description:   "Destination: Paris",
		AmountCents:   36800,
		CustomerEmail: "traveler@example.com",
		SuccessURL:    "https://travel.example.com/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://travel.example.com/booking-cancelled?booking_id=b1",
	}
}

func TestSessionParams(t *testing.T) {
	t.Parallel()

	params := SessionParams(parisTour())

	require.Len(t, params.LineItems, 1)
	item := params.LineItems[0]
	assert.Equal(t, int64(36800), *item.PriceData.UnitAmount)
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.Equal(t, "Paris Tour", *item.PriceData.ProductData.Name)
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "traveler@example.com", *params.CustomerEmail)
	assert.Equal(t, "b1", params.Metadata[MetadataBookingID])
}

func TestSessionParams_NoEmail(t *testing.T) {
	t.Parallel()

	req := parisTour()
	req.CustomerEmail = ""
	req.Description = ""

	params := SessionParams(req)
	assert.Nil(t, params.CustomerEmail)
	assert.Nil(t, params.LineItems[0].PriceData.ProductData.Description)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	var form map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.NoError(t, r.ParseForm())

		form = map[string]string{
			"unit_amount": r.PostForm.Get("line_items[0][price_data][unit_amount]"),
			"currency":    r.PostForm.Get("line_items[0][price_data][currency]"),
			"booking_id":  r.PostForm.Get("metadata[booking_id]"),
			"mode":        r.PostForm.Get("mode"),
			"email":       r.PostForm.Get("customer_email"),
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))
	defer srv.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})

	c := NewClient("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	require.True(t, c.Configured())

	s, err := c.CreateCheckoutSession(context.Background(), parisTour())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", s.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", s.URL)
	assert.Equal(t, map[string]string{
		"unit_amount": "36800",
		"currency":    "usd",
		"booking_id":  "b1",
		"mode":        "payment",
		"email":       "traveler@example.com",
	}, form)
}

func TestClient_NotConfigured(t *testing.T) {
	t.Parallel()

	c := NewClient("", nil)
	assert.False(t, c.Configured())

	_, err := c.CreateCheckoutSession(context.Background(), parisTour())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConstructEvent(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2020-08-27",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_intent": "pi_1",
			"metadata": {"booking_id": "b1"}
		}}
	}`)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})

	t.Run("Valid signature", func(t *testing.T) {
		t.Parallel()

		event, err := ConstructEvent(payload, signed.Header, testWebhookSecret)
		require.NoError(t, err)
		assert.Equal(t, stripe.EventTypeCheckoutSessionCompleted, event.Type)

		s, err := CompletedSession(event)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", s.ID)
		assert.Equal(t, "pi_1", PaymentIntentID(s))
		assert.Equal(t, "b1", s.Metadata[MetadataBookingID])
	})

	t.Run("Wrong secret", func(t *testing.T) {
		t.Parallel()

		_, err := ConstructEvent(payload, signed.Header, "whsec_other")
		assert.Error(t, err)
	})

	t.Run("Tampered payload", func(t *testing.T) {
		t.Parallel()

		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = ' '

		_, err := ConstructEvent(tampered, signed.Header, testWebhookSecret)
		assert.Error(t, err)
	})
}

func TestPaymentIntentID_Missing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", PaymentIntentID(nil))
	assert.Equal(t, "", PaymentIntentID(&stripe.CheckoutSession{}))
}
