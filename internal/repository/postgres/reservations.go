package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReservationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CreateReservation persists a confirmed reservation. Passengers and the
// flight snapshot are stored as jsonb, seat assignments as text[].
//
// Returns:
//   - error: repository.ErrConflict if the reservation ID already exists.
func (r *ReservationRepo) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.ReservationRepo.CreateReservation"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO reservations(
			reservation_id, flight_id, passengers, passenger_count,
			seat_class, total_price_usd, booked_at, flight_details,
			seat_assignments, seat_assignments_updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ReservationID, res.FlightID, res.Passengers, res.PassengerCount,
		res.SeatClass, res.TotalPriceUSD, res.BookedAt, res.FlightDetails,
		res.SeatAssignments, res.SeatAssignmentsUpdated,
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// GetReservation retrieves a reservation by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the reservation does not exist.
func (r *ReservationRepo) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.GetReservation"

	db := r.handle()

	var res domain.Reservation
	err := db.QueryRow(ctx,
		`SELECT reservation_id, flight_id, passengers, passenger_count,
			seat_class, total_price_usd, booked_at, flight_details,
			seat_assignments, seat_assignments_updated_at
		 FROM reservations WHERE reservation_id = $1`,
		reservationID,
	).Scan(
		&res.ReservationID, &res.FlightID, &res.Passengers, &res.PassengerCount,
		&res.SeatClass, &res.TotalPriceUSD, &res.BookedAt, &res.FlightDetails,
		&res.SeatAssignments, &res.SeatAssignmentsUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &res, nil
}

// UpdateSeatAssignments replaces the seat assignments for a reservation
// and stamps the update time.
//
// Returns:
//   - error: repository.ErrNotFound if the reservation does not exist.
func (r *ReservationRepo) UpdateSeatAssignments(
	ctx context.Context,
	reservationID string,
	seats []string,
	updatedAt time.Time,
) error {
	const op = "postgres.ReservationRepo.UpdateSeatAssignments"

	db := r.handle()

	// text[] round-trips nil as NULL; persist an empty selection explicitly.
	if seats == nil {
		seats = []string{}
	}

	tag, err := db.Exec(ctx,
		`UPDATE reservations
		 SET seat_assignments = $2, seat_assignments_updated_at = $3
		 WHERE reservation_id = $1`,
		reservationID, seats, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
