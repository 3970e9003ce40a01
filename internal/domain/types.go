package domain

import (
	"strings"
	"time"
)

type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightDelayed   FlightStatus = "delayed"
	FlightCancelled FlightStatus = "cancelled"
	FlightDeparted  FlightStatus = "departed"
	FlightLanded    FlightStatus = "landed"
)

// Bookable reports whether a reservation can still be created for the flight.
func (s FlightStatus) Bookable() bool {
	return s == FlightScheduled || s == FlightDelayed
}

type SeatClass = string

const (
	ClassEconomy  SeatClass = "Economy"
	ClassPremium  SeatClass = "Premium Economy"
	ClassBusiness SeatClass = "Business"
	ClassFirst    SeatClass = "First"
)

// ClassMultiplier scales a flight's base fare per seat class.
var ClassMultiplier = map[SeatClass]float64{
	ClassEconomy:  1.0,
	ClassPremium:  1.5,
	ClassBusiness: 2.5,
	ClassFirst:    4.0,
}

type Flight struct {
	FlightID             string       `json:"flight_id"`
	Airline              string       `json:"airline"`
	FlightNumber         string       `json:"flight_number"`
	DepartureCity        string       `json:"departure_city"`
	ArrivalCity          string       `json:"arrival_city"`
	DepartureAirportCode string       `json:"departure_airport_code"`
	ArrivalAirportCode   string       `json:"arrival_airport_code"`
	DepartureTime        time.Time    `json:"departure_time"`
	ArrivalTime          time.Time    `json:"arrival_time"`
	Status               FlightStatus `json:"status"`
	SeatsAvailable       int          `json:"seats_available"`
	PriceUSD             float64      `json:"price_usd"`
	AvailableClasses     []string     `json:"available_classes"`
	AircraftType         string       `json:"aircraft_type"`
}

// HasClass reports whether the flight sells the given seat class.
func (f *Flight) HasClass(class SeatClass) bool {
	for _, c := range f.AvailableClasses {
		if c == class {
			return true
		}
	}
	return false
}

type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
	Email  string `json:"email"`
}

type Reservation struct {
	ReservationID          string      `json:"reservation_id"`
	FlightID               string      `json:"flight_id"`
	Passengers             []Passenger `json:"passengers"`
	PassengerCount         int         `json:"passenger_count"`
	SeatClass              SeatClass   `json:"seat_class"`
	TotalPriceUSD          float64     `json:"total_price_usd"`
	BookedAt               time.Time   `json:"booked_at"`
	FlightDetails          Flight      `json:"flight_details"`
	SeatAssignments        []string    `json:"seat_assignments"`
	SeatAssignmentsUpdated *time.Time  `json:"seat_assignments_updated_at,omitempty"`
}

// SeatLimit is the maximum number of seats assignable to the reservation.
func (r *Reservation) SeatLimit() int {
	if r.PassengerCount < 1 {
		return 1
	}
	return r.PassengerCount
}

type Bill struct {
	Currency   string  `json:"currency"`
	UnitPrice  float64 `json:"unit_price"`
	Passengers int     `json:"passengers"`
	Subtotal   float64 `json:"subtotal"`
	Total      float64 `json:"total"`
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatHeld      SeatStatus = "held"
	SeatPending   SeatStatus = "pending"
)

type SeatType string

const (
	SeatWindow SeatType = "window"
	SeatMiddle SeatType = "middle"
	SeatAisle  SeatType = "aisle"
)

type SeatExtra struct {
	Legroom bool `json:"legroom"`
	ExitRow bool `json:"exitRow"`
}

type Seat struct {
	ID       string     `json:"id"`
	Display  string     `json:"display"`
	Status   SeatStatus `json:"status"`
	Type     SeatType   `json:"type"`
	Selected bool       `json:"selected"`
	Extra    SeatExtra  `json:"extra"`
}

type SeatRow struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Seats []Seat `json:"seats"`
}

type SeatSection struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Subtitle string    `json:"subtitle"`
	Rows     []SeatRow `json:"rows"`
}

type SeatInventoryMeta struct {
	ReportedAvailable int `json:"reportedAvailable"`
}

type SeatMapMeta struct {
	TotalSeats     int               `json:"totalSeats"`
	AvailableSeats int               `json:"availableSeats"`
	BookedSeats    int               `json:"bookedSeats"`
	HeldSeats      int               `json:"heldSeats"`
	PendingSeats   int               `json:"pendingSeats"`
	SelectedSeats  int               `json:"selectedSeats"`
	UpdatedAt      *time.Time        `json:"updatedAt"`
	Layout         string            `json:"layout"`
	Inventory      SeatInventoryMeta `json:"inventory"`
}

type SeatMap struct {
	Sections []SeatSection `json:"sections"`
	Meta     SeatMapMeta   `json:"meta"`
}

// FindSeat returns the seat with the given canonical ID, if present.
func (m *SeatMap) FindSeat(id string) *Seat {
	if m == nil {
		return nil
	}
	for si := range m.Sections {
		for ri := range m.Sections[si].Rows {
			row := &m.Sections[si].Rows[ri]
			for i := range row.Seats {
				if row.Seats[i].ID == id {
					return &row.Seats[i]
				}
			}
		}
	}
	return nil
}

// SeatSelection is the server-persisted seat-selection record.
type SeatSelection struct {
	SelectedSeats []string   `json:"selected_seats"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// ReservationPayload is the full reservation view returned by the API:
// the record itself plus the derived bill, selection record and cabin map.
type ReservationPayload struct {
	Reservation   Reservation   `json:"reservation"`
	Bill          Bill          `json:"bill"`
	SeatSelection SeatSelection `json:"seat_selection"`
	SeatMap       SeatMap       `json:"seat_map"`
}

// NormalizeSeatIDs trims, uppercases and dedupes raw seat identifiers,
// preserving first-seen order. Empty entries are dropped.
func NormalizeSeatIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		id := strings.ToUpper(strings.TrimSpace(v))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
