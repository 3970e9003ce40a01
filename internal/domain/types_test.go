package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeatIDs(t *testing.T) {
	got := NormalizeSeatIDs([]string{" 12a ", "12B", "12A", "", "  ", "3c"})
	assert.Equal(t, []string{"12A", "12B", "3C"}, got)

	assert.Nil(t, NormalizeSeatIDs(nil))
	assert.Nil(t, NormalizeSeatIDs([]string{}))
}

func TestSeatLimit(t *testing.T) {
	assert.Equal(t, 1, (&Reservation{}).SeatLimit())
	assert.Equal(t, 1, (&Reservation{PassengerCount: -2}).SeatLimit())
	assert.Equal(t, 4, (&Reservation{PassengerCount: 4}).SeatLimit())
}

func TestFlightStatusBookable(t *testing.T) {
	assert.True(t, FlightScheduled.Bookable())
	assert.True(t, FlightDelayed.Bookable())
	assert.False(t, FlightCancelled.Bookable())
	assert.False(t, FlightDeparted.Bookable())
}

func TestFlightHasClass(t *testing.T) {
	f := &Flight{AvailableClasses: []string{ClassEconomy, ClassBusiness}}
	assert.True(t, f.HasClass(ClassEconomy))
	assert.False(t, f.HasClass(ClassFirst))
}

func TestSeatMapFindSeat(t *testing.T) {
	m := &SeatMap{
		Sections: []SeatSection{{
			Rows: []SeatRow{{
				Seats: []Seat{{ID: "12A"}, {ID: "12B"}},
			}},
		}},
	}

	seat := m.FindSeat("12B")
	assert.NotNil(t, seat)
	assert.Nil(t, m.FindSeat("99Z"))

	var nilMap *SeatMap
	assert.Nil(t, nilMap.FindSeat("12A"))
}
