package flights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/repository"
	postgresrepo "github.com/aroya-air/seatwise/internal/repository/postgres"
	redisrepo "github.com/aroya-air/seatwise/internal/repository/redis"
	"github.com/aroya-air/seatwise/internal/uow"
)

// Search outcome codes, carried through to the response envelope.
const (
	CodeSearchOK        = "FLIGHT_SEARCH_OK"
	CodeSearchPartialOK = "FLIGHT_SEARCH_PARTIAL_OK"
	CodeSearchExplore   = "FLIGHT_SEARCH_EXPLORE"
)

type Config struct {
	ArrivalsTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ArrivalsTTL <= 0 {
		cfg.ArrivalsTTL = 60 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
	}
}

type Criteria struct {
	DepartureCity   string `json:"departure_city,omitempty"`
	ArrivalCity     string `json:"arrival_city,omitempty"`
	DepartureDate   string `json:"departure_date,omitempty"`
	Passengers      int    `json:"passengers"`
	ClassPreference string `json:"class_preference,omitempty"`
}

type Facets struct {
	AvailableDates []string `json:"available_dates"`
	Destinations   []string `json:"destinations"`
}

type SearchResult struct {
	Code     string          `json:"-"`
	Message  string          `json:"-"`
	Criteria Criteria        `json:"criteria"`
	Flights  []domain.Flight `json:"flights"`
	Facets   Facets          `json:"facets"`
	Needs    []string        `json:"needs"`
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseSearchDate accepts a bare date or an RFC3339 timestamp.
func parseSearchDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("unrecognized date %q", raw)
}

// Search filters the catalog against the criteria and reports facets and
// follow-up hints for the conversational flow.
//
// Returns:
//   - *SearchResult: matches plus facets/needs, with an outcome code.
//   - error: *InvalidCriteriaError if the criteria cannot be parsed.
func (s *Service) Search(ctx context.Context, c Criteria) (*SearchResult, error) {
	const op = "service.flights.Search"

	if c.Passengers < 1 {
		c.Passengers = 1
	}

	date, err := parseSearchDate(c.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, &InvalidCriteriaError{Detail: err.Error()})
	}
	c.DepartureDate = date

	all, err := s.store.Flights().ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dep := normalizeCity(c.DepartureCity)
	arr := normalizeCity(c.ArrivalCity)

	matchesCities := func(f *domain.Flight) bool {
		if dep != "" && arr != "" {
			return normalizeCity(f.DepartureCity) == dep && normalizeCity(f.ArrivalCity) == arr
		}
		if dep != "" && normalizeCity(f.DepartureCity) != dep {
			return false
		}
		if arr != "" && normalizeCity(f.ArrivalCity) != arr {
			return false
		}
		return true
	}

	var routeMatched []domain.Flight
	for i := range all {
		f := &all[i]
		if !matchesCities(f) || !f.Status.Bookable() {
			continue
		}
		if f.SeatsAvailable < c.Passengers {
			continue
		}
		if c.ClassPreference != "" && !f.HasClass(c.ClassPreference) {
			continue
		}
		routeMatched = append(routeMatched, *f)
	}

	var results []domain.Flight
	for i := range routeMatched {
		if c.DepartureDate == "" ||
			routeMatched[i].DepartureTime.Format("2006-01-02") == c.DepartureDate {
			results = append(results, routeMatched[i])
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PriceUSD != results[j].PriceUSD {
			return results[i].PriceUSD < results[j].PriceUSD
		}
		return results[i].SeatsAvailable > results[j].SeatsAvailable
	})

	res := &SearchResult{
		Criteria: c,
		Flights:  results,
		Facets:   buildFacets(routeMatched),
		Needs:    searchNeeds(c),
	}

	switch {
	case dep != "" && arr != "" && len(results) > 0:
		res.Code = CodeSearchOK
		res.Message = fmt.Sprintf("Found %d flight(s) from %s to %s.",
			len(results), c.DepartureCity, c.ArrivalCity)
	case dep != "" && arr != "":
		res.Code = CodeSearchPartialOK
		res.Message = fmt.Sprintf(
			"No exact-date results yet for %s to %s. Here are available dates you can pick.",
			c.DepartureCity, c.ArrivalCity)
	default:
		res.Code = CodeSearchExplore
		res.Message = "Select a destination and/or date from the available options."
	}

	return res, nil
}

func buildFacets(matched []domain.Flight) Facets {
	dateSet := make(map[string]struct{})
	destSet := make(map[string]struct{})
	for i := range matched {
		dateSet[matched[i].DepartureTime.Format("2006-01-02")] = struct{}{}
		destSet[matched[i].ArrivalCity] = struct{}{}
	}

	facets := Facets{
		AvailableDates: make([]string, 0, len(dateSet)),
		Destinations:   make([]string, 0, len(destSet)),
	}
	for d := range dateSet {
		facets.AvailableDates = append(facets.AvailableDates, d)
	}
	for d := range destSet {
		facets.Destinations = append(facets.Destinations, d)
	}
	sort.Strings(facets.AvailableDates)
	sort.Strings(facets.Destinations)

	return facets
}

func searchNeeds(c Criteria) []string {
	needs := []string{}
	if c.DepartureCity == "" {
		needs = append(needs, "departure_city")
	}
	if c.DepartureCity != "" && c.ArrivalCity == "" {
		needs = append(needs, "arrival_city")
	}
	if c.DepartureCity != "" && c.ArrivalCity != "" && c.DepartureDate == "" {
		needs = append(needs, "departure_date")
	}
	return needs
}

// GetFlight returns one catalog entry.
//
// Returns:
//   - error: flights.ErrFlightNotFound if the ID is unknown.
func (s *Service) GetFlight(ctx context.Context, flightID string) (*domain.Flight, error) {
	const op = "service.flights.GetFlight"

	f, err := s.store.Flights().GetFlight(ctx, strings.TrimSpace(flightID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlightNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// ArrivalCalendar returns the arrival-date calendar over the whole
// catalog, cached for a short TTL.
func (s *Service) ArrivalCalendar(ctx context.Context) (*Calendar, error) {
	const op = "service.flights.ArrivalCalendar"

	cal, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyArrivalCalendar(),
		s.cfg.ArrivalsTTL,
		func(ctx context.Context) (Calendar, error) {
			fs, err := s.store.Flights().ListFlights(ctx)
			if err != nil {
				return Calendar{}, err
			}
			return *BuildCalendar(fs), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cal, nil
}

// CreateFlight adds a flight to the catalog.
//
// Returns:
//   - error: flights.ErrFlightExists if the flight ID is already present.
func (s *Service) CreateFlight(ctx context.Context, f *domain.Flight) error {
	const op = "service.flights.CreateFlight"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Flights().With(tx).CreateFlight(ctx, f); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrFlightExists)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateArrivals(ctx)
		})

		return nil
	})

	return err
}
