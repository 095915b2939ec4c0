package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"travelAgency/internal/lib/events"
	"travelAgency/internal/lib/logger/sl"
	"travelAgency/internal/lib/payment/stripepay"
	"travelAgency/internal/storage"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/stripe/stripe-go/v79"
)

const (
	maxBodyBytes = int64(65536)

	defaultPublishTimeout = 2 * time.Second
)

type Response struct {
	Received bool `json:"received"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingConfirmer
type BookingConfirmer interface {
	ConfirmBooking(ctx context.Context, bookingID, paymentIntentID, sessionID string) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventMarker
type EventMarker interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ConfirmationPublisher
type ConfirmationPublisher interface {
	PublishBooking(ctx context.Context, event events.BookingEvent) error
}

type options struct {
	marker         EventMarker
	publisher      ConfirmationPublisher
	publishTimeout time.Duration
}

type Option func(*options)

// WithEventMarker skips events that were already applied.
func WithEventMarker(m EventMarker) Option {
	return func(o *options) {
		o.marker = m
	}
}

// WithPublisher announces every Pending to Confirmed transition.
func WithPublisher(p ConfirmationPublisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithPublishTimeout bounds how long a confirmation publish may hold the
// acknowledgement back.
func WithPublishTimeout(d time.Duration) Option {
	return func(o *options) {
		o.publishTimeout = d
	}
}

func New(log *slog.Logger, webhookSecret string, bookings BookingConfirmer, opts ...Option) http.HandlerFunc {
	o := options{publishTimeout: defaultPublishTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.webhook.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if webhookSecret == "" {
			log.Error("webhook secret is not configured")
			http.Error(w, "STRIPE_WEBHOOK_SECRET is not set", http.StatusInternalServerError)
			return
		}

		signature := r.Header.Get(stripepay.SignatureHeader)
		if signature == "" {
			log.Error("missing signature header")
			http.Error(w, "missing Stripe-Signature header", http.StatusBadRequest)
			return
		}

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.Error("failed to read request body", sl.Err(err))
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		event, err := stripepay.ConstructEvent(payload, signature, webhookSecret)
		if err != nil {
			log.Error("webhook signature verification failed", sl.Err(err))
			http.Error(w, "webhook signature verification failed: "+err.Error(), http.StatusBadRequest)
			return
		}

		log = log.With(
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
		)

		if event.Type != stripe.EventTypeCheckoutSessionCompleted {
			log.Debug("event ignored")
			responseOK(w, r)
			return
		}

		if o.marker != nil {
			seen, err := o.marker.Seen(r.Context(), event.ID)
			if err != nil {
				log.Warn("failed to check processed events", sl.Err(err))
			} else if seen {
				log.Info("event already processed")
				responseOK(w, r)
				return
			}
		}

		session, err := stripepay.CompletedSession(event)
		if err != nil {
			log.Error("failed to decode checkout session", sl.Err(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bookingID := session.Metadata[stripepay.MetadataBookingID]
		if bookingID == "" {
			log.Warn("checkout session has no booking_id in metadata", slog.String("session_id", session.ID))
			responseOK(w, r)
			return
		}

		paymentIntentID := stripepay.PaymentIntentID(session)

		log = log.With(
			slog.String("booking_id", bookingID),
			slog.String("session_id", session.ID),
			slog.String("payment_intent_id", paymentIntentID),
		)

		changed, err := bookings.ConfirmBooking(r.Context(), bookingID, paymentIntentID, session.ID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				log.Warn("no booking for completed checkout session", sl.Err(err))
				responseOK(w, r)
				return
			case errors.Is(err, storage.ErrBookingNotPending):
				log.Warn("booking can no longer be confirmed", sl.Err(err))
				responseOK(w, r)
				return
			default:
				log.Error("failed to confirm booking", sl.Err(err))
				http.Error(w, "failed to update booking", http.StatusInternalServerError)
				return
			}
		}

		if changed {
			log.Info("booking confirmed")

			if o.publisher != nil {
				publish(r.Context(), log, o, events.NewBookingConfirmed(bookingID, paymentIntentID, session.ID))
			}
		} else {
			log.Info("booking already confirmed")
		}

		if o.marker != nil {
			if err = o.marker.Mark(r.Context(), event.ID); err != nil {
				log.Warn("failed to mark event as processed", sl.Err(err))
			}
		}

		responseOK(w, r)
	}
}

func publish(ctx context.Context, log *slog.Logger, o options, ev events.BookingEvent) {
	ctx, cancel := context.WithTimeout(ctx, o.publishTimeout)
	defer cancel()

	if err := o.publisher.PublishBooking(ctx, ev); err != nil {
		log.Warn("failed to publish booking confirmation", sl.Err(err))
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{Received: true})
}
