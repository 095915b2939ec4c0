package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travelAgency/internal/models"
	"travelAgency/internal/storage"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func New(databaseURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// BookingForUser returns the booking only when it belongs to userID, so a
// booking owned by someone else is indistinguishable from a missing one.
func (s *Storage) BookingForUser(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	const op = "storage.postgres.BookingForUser"

	query := `
		SELECT id, user_id, status, package_title, package_destination,
		       COALESCE((pricing->>'totalCost')::float8, 0),
		       payment_intent_id, session_id, created_at, updated_at
		FROM bookings
		WHERE id = $1 AND user_id = $2`

	var b models.Booking
	var paymentIntentID, sessionID sql.NullString

	err := s.DB.QueryRowContext(ctx, query, bookingID, userID).Scan(
		&b.ID,
		&b.UserID,
		&b.Status,
		&b.PackageTitle,
		&b.PackageDestination,
		&b.Pricing.TotalCost,
		&paymentIntentID,
		&sessionID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get booking: %w", op, err)
	}

	if paymentIntentID.Valid {
		b.PaymentIntentID = &paymentIntentID.String
	}
	if sessionID.Valid {
		b.SessionID = &sessionID.String
	}

	return &b, nil
}

// ConfirmBooking moves a Pending booking to Confirmed and records the payment
// identifiers. It reports false without writing when the booking is already
// Confirmed, and fails with storage.ErrBookingNotPending for any other status.
func (s *Storage) ConfirmBooking(ctx context.Context, bookingID, paymentIntentID, sessionID string) (bool, error) {
	const op = "storage.postgres.ConfirmBooking"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var status models.BookingStatus
	checkQuery := `
		SELECT status FROM bookings
		WHERE id = $1
		FOR UPDATE`

	err = tx.QueryRowContext(ctx, checkQuery, bookingID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return false, fmt.Errorf("%s: failed to check booking: %w", op, err)
	}

	switch status {
	case models.BookingConfirmed:
		return false, nil
	case models.BookingPending:
	default:
		return false, fmt.Errorf("%s: status %q: %w", op, status, storage.ErrBookingNotPending)
	}

	updateQuery := `
		UPDATE bookings
		SET status = $2, payment_intent_id = $3, session_id = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5`

	_, err = tx.ExecContext(ctx, updateQuery, bookingID, models.BookingConfirmed, paymentIntentID, sessionID, models.BookingPending)
	if err != nil {
		return false, fmt.Errorf("%s: failed to confirm booking: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return true, nil
}
