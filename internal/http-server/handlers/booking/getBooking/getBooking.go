package getBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"travelAgency/internal/lib/api/response"
	"travelAgency/internal/lib/logger/sl"
	"travelAgency/internal/models"
	"travelAgency/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	BookingForUser(ctx context.Context, bookingID, userID string) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=IdentityResolver
type IdentityResolver interface {
	Identify(ctx context.Context, authorization string) (*models.Identity, error)
}

func New(log *slog.Logger, identities IdentityResolver, bookings BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBooking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		identity, err := identities.Identify(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			log.Error("failed to identify user", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not authenticated"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		booking, err := bookings.BookingForUser(r.Context(), bookingID, identity.UserID)
		if err != nil {
			log.Error("failed to get booking", sl.Err(err))

			if errors.Is(err, storage.ErrBookingNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get booking"))
			return
		}

		log.Info("booking retrieved", slog.String("status", string(booking.Status)))

		responseOK(w, r, booking)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking *models.Booking) {
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
