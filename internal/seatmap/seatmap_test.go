package seatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroya-air/seatwise/internal/domain"
)

func testReservation(seatsAvailable int, assignments ...string) *domain.Reservation {
	return &domain.Reservation{
		ReservationID:   "AR-11223344",
		FlightID:        "AA-1001",
		PassengerCount:  2,
		SeatAssignments: assignments,
		FlightDetails: domain.Flight{
			FlightID:       "AA-1001",
			AircraftType:   "Boeing 737",
			SeatsAvailable: seatsAvailable,
		},
	}
}

func TestBuildDeterministic(t *testing.T) {
	res := testReservation(40, "12A", "12B")

	a := Build(res)
	b := Build(res)

	assert.Equal(t, a, b, "same flight/reservation pair must render the same map")
}

func TestBuildVariesByReservation(t *testing.T) {
	a := Build(testReservation(40))

	other := testReservation(40)
	other.ReservationID = "AR-99887766"
	b := Build(other)

	assert.NotEqual(t, a.Sections, b.Sections, "different reservations should scatter statuses differently")
}

func TestBuildLayoutShape(t *testing.T) {
	m := Build(testReservation(40))

	require.Len(t, m.Sections, 1)
	sec := m.Sections[0]
	assert.Equal(t, "main-cabin", sec.ID)
	assert.Equal(t, "Boeing 737 cabin", sec.Label)
	require.Len(t, sec.Rows, 18)

	for _, row := range sec.Rows {
		require.Len(t, row.Seats, 6)
	}

	first := sec.Rows[0].Seats
	assert.Equal(t, "1A", first[0].ID)
	assert.Equal(t, domain.SeatWindow, first[0].Type)
	assert.Equal(t, domain.SeatMiddle, first[1].Type)
	assert.Equal(t, domain.SeatAisle, first[2].Type)
	assert.True(t, first[0].Extra.Legroom)
	assert.False(t, first[0].Extra.ExitRow)
	assert.True(t, sec.Rows[8].Seats[0].Extra.ExitRow)

	assert.Equal(t, "3-3 configuration", m.Meta.Layout)
	assert.Equal(t, 108, m.Meta.TotalSeats)
}

func TestBuildRowCountGrowsWithInventory(t *testing.T) {
	m := Build(testReservation(120))
	// 120/6 + 6 = 26, capped at 24 rows.
	assert.Len(t, m.Sections[0].Rows, 24)
	assert.Equal(t, 144, m.Meta.TotalSeats)
}

func TestBuildMetaCountsAddUp(t *testing.T) {
	res := testReservation(40, "7C")
	m := Build(res)

	meta := m.Meta
	assert.Equal(t, 40, meta.Inventory.ReportedAvailable)
	assert.Equal(t, 1, meta.SelectedSeats)
	assert.Equal(t, meta.TotalSeats-40, meta.BookedSeats)
	assert.Equal(t,
		meta.TotalSeats,
		meta.AvailableSeats+meta.BookedSeats+meta.HeldSeats+meta.PendingSeats+meta.SelectedSeats,
	)
}

func TestBuildSelectedSeatsNeverOverwritten(t *testing.T) {
	// Inventory of zero makes every other seat booked; the assigned seats
	// must still come back selected and available.
	res := testReservation(0, "3a", " 3B ", "3a")
	m := Build(res)

	for _, id := range []string{"3A", "3B"} {
		seat := m.FindSeat(id)
		require.NotNil(t, seat, id)
		assert.True(t, seat.Selected, id)
		assert.Equal(t, domain.SeatAvailable, seat.Status, id)
	}
	assert.Equal(t, 2, m.Meta.SelectedSeats)
	assert.Zero(t, m.Meta.AvailableSeats)
}

func TestBuildUpdatedAtFallsBackToBookedAt(t *testing.T) {
	res := testReservation(40)
	res.BookedAt = time.Date(2026, 3, 14, 10, 30, 0, 0, time.FixedZone("X", 3600))

	m := Build(res)

	require.NotNil(t, m.Meta.UpdatedAt)
	assert.Equal(t, time.UTC, m.Meta.UpdatedAt.Location())
	assert.True(t, m.Meta.UpdatedAt.Equal(res.BookedAt))

	upd := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	res.SeatAssignmentsUpdated = &upd
	m = Build(res)
	require.NotNil(t, m.Meta.UpdatedAt)
	assert.True(t, m.Meta.UpdatedAt.Equal(upd))
}
