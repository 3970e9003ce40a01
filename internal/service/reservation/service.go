package reservation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/repository"
	postgresrepo "github.com/aroya-air/seatwise/internal/repository/postgres"
	redisrepo "github.com/aroya-air/seatwise/internal/repository/redis"
	"github.com/aroya-air/seatwise/internal/seatmap"
	"github.com/aroya-air/seatwise/internal/uow"
	"github.com/google/uuid"
)

type Config struct {
	PayloadTTL time.Duration
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisrepo.ReservationsPubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.ReservationsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.PayloadTTL <= 0 {
		cfg.PayloadTTL = 30 * time.Second
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

type CreateInput struct {
	FlightID       string
	SeatClass      domain.SeatClass
	Confirm        bool
	PassengerCount int
	Passengers     []PassengerInput
}

// Preview is the dry-run outcome of a create request: pricing plus the
// validation state the caller must resolve before confirming.
type Preview struct {
	Flight         domain.Flight      `json:"flight"`
	SeatClass      domain.SeatClass   `json:"seat_class"`
	PassengerCount int                `json:"passenger_count"`
	Passengers     []domain.Passenger `json:"passengers"`
	PendingEntries []PassengerInput   `json:"pending_entries"`
	ValidationOK   bool               `json:"validation_ok"`
	Issues         []Issue            `json:"issues"`
	Bill           domain.Bill        `json:"bill"`
	NextAction     string             `json:"next_action"`
}

// CreateOutcome carries either a preview or, on confirm, the persisted
// reservation payload.
type CreateOutcome struct {
	Confirmed bool
	Preview   *Preview
	Payload   *domain.ReservationPayload
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UnitPrice derives the per-passenger fare for a seat class from the
// flight's base fare.
func UnitPrice(f *domain.Flight, class domain.SeatClass) float64 {
	mul, ok := domain.ClassMultiplier[class]
	if !ok {
		mul = 1.0
	}
	return round2(f.PriceUSD * mul)
}

func buildBill(unitPrice float64, paxCount int) domain.Bill {
	if paxCount < 1 {
		paxCount = 1
	}
	total := round2(unitPrice * float64(paxCount))
	return domain.Bill{
		Currency:   "USD",
		UnitPrice:  unitPrice,
		Passengers: paxCount,
		Subtotal:   total,
		Total:      total,
	}
}

func billFor(res *domain.Reservation) domain.Bill {
	pax := res.SeatLimit()
	return domain.Bill{
		Currency:   "USD",
		UnitPrice:  round2(res.TotalPriceUSD / float64(pax)),
		Passengers: pax,
		Subtotal:   res.TotalPriceUSD,
		Total:      res.TotalPriceUSD,
	}
}

// buildPayload assembles the full reservation view: record, bill,
// selection record and the regenerated cabin map.
func buildPayload(res *domain.Reservation) *domain.ReservationPayload {
	updated := res.SeatAssignmentsUpdated
	if updated == nil && !res.BookedAt.IsZero() {
		bookedAt := res.BookedAt
		updated = &bookedAt
	}

	return &domain.ReservationPayload{
		Reservation: *res,
		Bill:        billFor(res),
		SeatSelection: domain.SeatSelection{
			SelectedSeats: domain.NormalizeSeatIDs(res.SeatAssignments),
			UpdatedAt:     updated,
		},
		SeatMap: seatmap.Build(res),
	}
}

func genReservationID() string {
	id := uuid.New()
	return "AR-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// Create validates and prices a booking request. Without Confirm it only
// previews; with Confirm it decrements flight inventory and persists the
// reservation in one transaction.
//
// Returns:
//   - error: reservation.ErrFlightNotFound if the flight is unknown.
//   - error: *reservation.UnbookableError if the flight cannot be booked.
//   - error: *reservation.ClassNotAvailableError for an unsold class.
//   - error: *reservation.NoSeatsError when inventory is short.
//   - error: *reservation.ValidationError when confirming with invalid
//     passenger details.
func (s *Service) Create(ctx context.Context, in CreateInput, rlKey string) (*CreateOutcome, error) {
	const op = "service.reservation.Create"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, &RateLimitedError{RetryAfter: retry})
		}
	}

	if in.SeatClass == "" {
		in.SeatClass = domain.ClassEconomy
	}

	f, err := s.store.Flights().GetFlight(ctx, in.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !f.Status.Bookable() {
		return nil, fmt.Errorf("%s: %w", op, &UnbookableError{Status: string(f.Status)})
	}

	if !f.HasClass(in.SeatClass) {
		return nil, fmt.Errorf("%s: %w", op, &ClassNotAvailableError{
			Class:     in.SeatClass,
			Available: f.AvailableClasses,
		})
	}

	paxCount := in.PassengerCount
	if paxCount < 1 {
		paxCount = len(in.Passengers)
	}
	if paxCount < 1 {
		paxCount = 1
	}

	if f.SeatsAvailable < paxCount {
		return nil, fmt.Errorf("%s: %w", op, &NoSeatsError{
			Available: f.SeatsAvailable,
			Requested: paxCount,
		})
	}

	valid, issues := validatePassengers(paxCount, in.Passengers, time.Now().UTC())
	bill := buildBill(UnitPrice(f, in.SeatClass), paxCount)

	if !in.Confirm {
		nextAction := "ask_confirmation"
		if len(issues) > 0 {
			nextAction = "collect_missing_passenger_details"
		}
		return &CreateOutcome{
			Preview: &Preview{
				Flight:         *f,
				SeatClass:      in.SeatClass,
				PassengerCount: paxCount,
				Passengers:     valid,
				PendingEntries: in.Passengers,
				ValidationOK:   len(issues) == 0,
				Issues:         issues,
				Bill:           bill,
				NextAction:     nextAction,
			},
		}, nil
	}

	if len(issues) > 0 || len(valid) != paxCount {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{
			PassengerCount: paxCount,
			ProvidedValid:  len(valid),
			Issues:         issues,
		})
	}

	now := time.Now().UTC()
	res := &domain.Reservation{
		ReservationID:          genReservationID(),
		FlightID:               f.FlightID,
		Passengers:             valid,
		PassengerCount:         paxCount,
		SeatClass:              in.SeatClass,
		TotalPriceUSD:          bill.Total,
		BookedAt:               now,
		FlightDetails:          *f,
		SeatAssignments:        []string{},
		SeatAssignmentsUpdated: &now,
	}

	err = s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Flights().With(tx).TakeSeats(ctx, f.FlightID, paxCount); err != nil {
			if errors.Is(err, repository.ErrNoSeatsLeft) {
				return fmt.Errorf("%s: %w", op, &NoSeatsError{
					Available: f.SeatsAvailable,
					Requested: paxCount,
				})
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.Reservations().With(tx).CreateReservation(ctx, res); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateReservation(ctx, res.ReservationID)
			_ = s.pubsub.PublishReservationChanged(ctx, res.ReservationID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keep the embedded flight snapshot consistent with the decrement.
	res.FlightDetails.SeatsAvailable -= paxCount

	return &CreateOutcome{
		Confirmed: true,
		Payload:   buildPayload(res),
	}, nil
}

// Get retrieves a reservation payload, caching it briefly.
//
// Returns:
//   - error: reservation.ErrReservationIDEmpty on a blank ID.
//   - error: reservation.ErrReservationNotFound if the ID is unknown.
func (s *Service) Get(ctx context.Context, reservationID string) (*domain.ReservationPayload, error) {
	const op = "service.reservation.Get"

	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrReservationIDEmpty)
	}

	payload, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyReservationPayload(reservationID),
		s.cfg.PayloadTTL,
		func(ctx context.Context) (domain.ReservationPayload, error) {
			res, err := s.store.Reservations().GetReservation(ctx, reservationID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.ReservationPayload{}, ErrReservationNotFound
				}
				return domain.ReservationPayload{}, err
			}
			return *buildPayload(res), nil
		},
	)
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &payload, nil
}

// UpdateSeats persists seat assignments for a reservation and returns the
// regenerated payload. The list is normalized and silently trimmed to the
// reservation's passenger count, matching what the confirm flow submits.
//
// Returns:
//   - error: reservation.ErrReservationIDEmpty on a blank ID.
//   - error: reservation.ErrReservationNotFound if the ID is unknown.
func (s *Service) UpdateSeats(ctx context.Context, reservationID string, seats []string) (*domain.ReservationPayload, error) {
	const op = "service.reservation.UpdateSeats"

	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrReservationIDEmpty)
	}

	res, err := s.store.Reservations().GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normalized := domain.NormalizeSeatIDs(seats)
	if limit := res.SeatLimit(); len(normalized) > limit {
		normalized = normalized[:limit]
	}
	if normalized == nil {
		normalized = []string{}
	}

	now := time.Now().UTC()

	err = s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Reservations().With(tx).UpdateSeatAssignments(ctx, reservationID, normalized, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrReservationNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateReservation(ctx, reservationID)
			_ = s.pubsub.PublishReservationChanged(ctx, reservationID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	res.SeatAssignments = normalized
	res.SeatAssignmentsUpdated = &now

	return buildPayload(res), nil
}
