package reservation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroya-air/seatwise/internal/domain"
)

func TestUnitPrice(t *testing.T) {
	f := &domain.Flight{PriceUSD: 200}

	assert.Equal(t, 200.0, UnitPrice(f, domain.ClassEconomy))
	assert.Equal(t, 300.0, UnitPrice(f, domain.ClassPremium))
	assert.Equal(t, 500.0, UnitPrice(f, domain.ClassBusiness))
	assert.Equal(t, 800.0, UnitPrice(f, domain.ClassFirst))
	// Unknown classes fall back to the base fare.
	assert.Equal(t, 200.0, UnitPrice(f, "cargo"))
}

func TestBuildBill(t *testing.T) {
	bill := buildBill(150.50, 3)

	assert.Equal(t, "USD", bill.Currency)
	assert.Equal(t, 150.50, bill.UnitPrice)
	assert.Equal(t, 3, bill.Passengers)
	assert.Equal(t, 451.50, bill.Subtotal)
	assert.Equal(t, bill.Subtotal, bill.Total)

	// Zero passengers still bills for one.
	assert.Equal(t, 1, buildBill(100, 0).Passengers)
}

func TestBillFor(t *testing.T) {
	res := &domain.Reservation{PassengerCount: 2, TotalPriceUSD: 400}
	bill := billFor(res)

	assert.Equal(t, 200.0, bill.UnitPrice)
	assert.Equal(t, 2, bill.Passengers)
	assert.Equal(t, 400.0, bill.Total)
}

func TestGenReservationID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := genReservationID()
		require.True(t, strings.HasPrefix(id, "AR-"), id)
		require.Len(t, id, 11, id)
		suffix := strings.TrimPrefix(id, "AR-")
		assert.Equal(t, strings.ToUpper(suffix), suffix)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestBuildPayload(t *testing.T) {
	booked := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	res := &domain.Reservation{
		ReservationID:   "AR-11223344",
		FlightID:        "AA-1001",
		PassengerCount:  2,
		TotalPriceUSD:   400,
		BookedAt:        booked,
		SeatAssignments: []string{" 12a", "12B", "12A "},
		FlightDetails: domain.Flight{
			FlightID:       "AA-1001",
			SeatsAvailable: 40,
			PriceUSD:       200,
		},
	}

	p := buildPayload(res)

	assert.Equal(t, *res, p.Reservation)
	assert.Equal(t, []string{"12A", "12B"}, p.SeatSelection.SelectedSeats)
	require.NotNil(t, p.SeatSelection.UpdatedAt)
	assert.True(t, p.SeatSelection.UpdatedAt.Equal(booked))
	assert.Equal(t, 2, p.SeatMap.Meta.SelectedSeats)
	assert.Equal(t, 400.0, p.Bill.Total)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, round2(0.1+0.2))
	assert.Equal(t, 19.99, round2(19.991))
	assert.Equal(t, 20.0, round2(19.996))
}
