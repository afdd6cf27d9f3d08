package repository

import (
	"context"

	"github.com/airparadise/chatbot/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (flight_id, user_name, passport_number, booking_reference)
		VALUES ($1, $2, $3, $4)
		RETURNING booking_id`, booking.FlightID, booking.UserName, booking.PassportNumber, booking.Reference).
		Scan(&booking.ID)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
