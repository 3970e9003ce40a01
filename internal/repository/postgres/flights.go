package postgres

import (
	"context"
	"fmt"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FlightRepo) With(db DB) *FlightRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FlightRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const flightColumns = `flight_id, airline, flight_number,
	departure_city, arrival_city, departure_airport_code, arrival_airport_code,
	departure_time, arrival_time, status, seats_available, price_usd,
	available_classes, aircraft_type`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(
		&f.FlightID, &f.Airline, &f.FlightNumber,
		&f.DepartureCity, &f.ArrivalCity, &f.DepartureAirportCode, &f.ArrivalAirportCode,
		&f.DepartureTime, &f.ArrivalTime, &f.Status, &f.SeatsAvailable, &f.PriceUSD,
		&f.AvailableClasses, &f.AircraftType,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFlight inserts a flight into the catalog.
//
// Returns:
//   - error: repository.ErrConflict if a flight with the same ID exists.
func (r *FlightRepo) CreateFlight(ctx context.Context, f *domain.Flight) error {
	const op = "postgres.FlightRepo.CreateFlight"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO flights(`+flightColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		f.FlightID, f.Airline, f.FlightNumber,
		f.DepartureCity, f.ArrivalCity, f.DepartureAirportCode, f.ArrivalAirportCode,
		f.DepartureTime, f.ArrivalTime, f.Status, f.SeatsAvailable, f.PriceUSD,
		f.AvailableClasses, f.AircraftType,
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// GetFlight retrieves a single flight by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *FlightRepo) GetFlight(ctx context.Context, flightID string) (*domain.Flight, error) {
	const op = "postgres.FlightRepo.GetFlight"

	db := r.handle()

	f, err := scanFlight(db.QueryRow(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE flight_id = $1`,
		flightID,
	))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return f, nil
}

// ListFlights returns the full catalog ordered by arrival time. The
// catalog is small (one dataset); filtering happens in the service layer.
func (r *FlightRepo) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	const op = "postgres.FlightRepo.ListFlights"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+flightColumns+` FROM flights ORDER BY arrival_time, flight_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}
	defer rows.Close()

	var out []domain.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// TakeSeats decrements a flight's available-seat inventory by count,
// guarded so inventory never goes negative.
//
// Returns:
//   - error: repository.ErrNoSeatsLeft if fewer than count seats remain.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *FlightRepo) TakeSeats(ctx context.Context, flightID string, count int) error {
	const op = "postgres.FlightRepo.TakeSeats"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE flights
		 SET seats_available = seats_available - $2
		 WHERE flight_id = $1 AND seats_available >= $2`,
		flightID, count,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM flights WHERE flight_id = $1)`,
			flightID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNoSeatsLeft)
	}

	return nil
}
