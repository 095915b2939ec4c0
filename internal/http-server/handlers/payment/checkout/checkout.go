package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"travelAgency/internal/lib/api/response"
	"travelAgency/internal/lib/apperr"
	"travelAgency/internal/lib/logger/sl"
	"travelAgency/internal/lib/payment/stripepay"
	"travelAgency/internal/models"
	"travelAgency/internal/storage"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type Response struct {
	response.Response
	URL string `json:"url,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingProvider
type BookingProvider interface {
	BookingForUser(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=IdentityResolver
type IdentityResolver interface {
	Identify(ctx context.Context, authorization string) (*models.Identity, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionCreator
type SessionCreator interface {
	Configured() bool
	CreateCheckoutSession(ctx context.Context, req stripepay.CheckoutRequest) (*stripepay.CheckoutSession, error)
}

// RedirectURLs override where the hosted checkout page sends the customer.
// Empty values are derived from the request Origin.
type RedirectURLs struct {
	Success string
	Cancel  string
}

const (
	successPath = "/booking-success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/booking-cancelled?booking_id="

	bookingIDPlaceholder = "{BOOKING_ID}"
)

func New(
	log *slog.Logger,
	sessions SessionCreator,
	identities IdentityResolver,
	bookings BookingProvider,
	urls RedirectURLs,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payment.checkout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if r.Method == http.MethodOptions {
			setCORSHeaders(w)
			w.WriteHeader(http.StatusOK)
			return
		}

		if !sessions.Configured() {
			fail(w, r, log, apperr.New(apperr.KindInternal, "STRIPE_SECRET_KEY is not set"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			fail(w, r, log, apperr.Wrap(apperr.KindBadRequest, "failed to decode request", err))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				fail(w, r, log, apperr.Wrap(apperr.KindBadRequest, response.ValidationError(validateErr).Error, err))
				return
			}
		}

		identity, err := identities.Identify(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			fail(w, r, log, apperr.Wrap(apperr.KindUnauthorized, "user not authenticated", err))
			return
		}

		log = log.With(
			slog.String("booking_id", req.BookingID),
			slog.String("user_id", identity.UserID),
		)

		booking, err := bookings.BookingForUser(r.Context(), req.BookingID, identity.UserID)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				fail(w, r, log, apperr.Wrap(apperr.KindNotFound, "booking not found", err))
				return
			}
			fail(w, r, log, apperr.Wrap(apperr.KindInternal, "failed to load booking", err))
			return
		}

		session, err := sessions.CreateCheckoutSession(r.Context(), sessionRequest(r, booking, identity, urls))
		if err != nil {
			fail(w, r, log, apperr.Wrap(apperr.KindUpstream, "failed to create checkout session", err))
			return
		}

		log.Info("checkout session created", slog.String("session_id", session.ID))

		responseOK(w, r, session.URL)
	}
}

func sessionRequest(r *http.Request, b *models.Booking, identity *models.Identity, urls RedirectURLs) stripepay.CheckoutRequest {
	origin := strings.TrimRight(r.Header.Get("Origin"), "/")

	successURL := urls.Success
	if successURL == "" {
		successURL = origin + successPath
	}

	cancelURL := strings.ReplaceAll(urls.Cancel, bookingIDPlaceholder, url.QueryEscape(b.ID))
	if cancelURL == "" {
		cancelURL = origin + cancelPath + url.QueryEscape(b.ID)
	}

	var description string
	if b.PackageDestination != "" {
		description = "Destination: " + b.PackageDestination
	}

	return stripepay.CheckoutRequest{
		BookingID:     b.ID,
		Title:         b.PackageTitle,
		Description:   description,
		AmountCents:   b.Pricing.TotalCents(),
		Currency:      stripepay.CurrencyUSD,
		CustomerEmail: identity.Email,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	}
}

// Failures share one status code; the kind travels in the body.
func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := apperr.KindOf(err)

	log.Error("checkout failed", slog.String("kind", string(kind)), sl.Err(err))

	setCORSHeaders(w)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.ErrorCode(apperr.Message(err), string(kind)))
}

func setCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") == "" {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

func responseOK(w http.ResponseWriter, r *http.Request, redirectURL string) {
	setCORSHeaders(w)
	render.JSON(w, r, Response{
		Response: response.OK(),
		URL:      redirectURL,
	})
}
