package httpgin

import (
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/service/reservation"
)

// Envelope is the response wrapper the original agent API used; every
// reservation and search endpoint answers with one.
type Envelope struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type PassengerDTO struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
	Email  string `json:"email"`
}

func (p PassengerDTO) toInput() reservation.PassengerInput {
	return reservation.PassengerInput{
		Name:   p.Name,
		Age:    p.Age,
		Gender: p.Gender,
		DOB:    p.DOB,
		Email:  p.Email,
	}
}

type CreateReservationRequest struct {
	FlightID       string         `json:"flight_id" binding:"required"`
	SeatClass      string         `json:"seat_class"`
	Confirm        bool           `json:"confirm"`
	PassengerCount int            `json:"passenger_count"`
	Passengers     []PassengerDTO `json:"passengers"`
}

func (r *CreateReservationRequest) toInput() reservation.CreateInput {
	in := reservation.CreateInput{
		FlightID:       r.FlightID,
		SeatClass:      r.SeatClass,
		Confirm:        r.Confirm,
		PassengerCount: r.PassengerCount,
	}
	for _, p := range r.Passengers {
		in.Passengers = append(in.Passengers, p.toInput())
	}
	return in
}

type UpdateSeatsRequest struct {
	Seats []string `json:"seats"`
}

type FlightInput struct {
	FlightID             string   `json:"flight_id" binding:"required"`
	Airline              string   `json:"airline" binding:"required"`
	FlightNumber         string   `json:"flight_number" binding:"required"`
	DepartureCity        string   `json:"departure_city" binding:"required"`
	ArrivalCity          string   `json:"arrival_city" binding:"required"`
	DepartureAirportCode string   `json:"departure_airport_code" binding:"required"`
	ArrivalAirportCode   string   `json:"arrival_airport_code" binding:"required"`
	DepartureTime        string   `json:"departure_time" binding:"required"`
	ArrivalTime          string   `json:"arrival_time" binding:"required"`
	Status               string   `json:"status"`
	SeatsAvailable       int      `json:"seats_available" binding:"gte=0"`
	PriceUSD             float64  `json:"price_usd" binding:"gte=0"`
	AvailableClasses     []string `json:"available_classes"`
	AircraftType         string   `json:"aircraft_type"`
}

func (in *FlightInput) toDomain() (*domain.Flight, error) {
	dep, err := time.Parse(time.RFC3339, in.DepartureTime)
	if err != nil {
		return nil, err
	}
	arr, err := time.Parse(time.RFC3339, in.ArrivalTime)
	if err != nil {
		return nil, err
	}

	status := domain.FlightStatus(in.Status)
	if status == "" {
		status = domain.FlightScheduled
	}

	classes := in.AvailableClasses
	if len(classes) == 0 {
		classes = []string{domain.ClassEconomy}
	}

	return &domain.Flight{
		FlightID:             in.FlightID,
		Airline:              in.Airline,
		FlightNumber:         in.FlightNumber,
		DepartureCity:        in.DepartureCity,
		ArrivalCity:          in.ArrivalCity,
		DepartureAirportCode: in.DepartureAirportCode,
		ArrivalAirportCode:   in.ArrivalAirportCode,
		DepartureTime:        dep,
		ArrivalTime:          arr,
		Status:               status,
		SeatsAvailable:       in.SeatsAvailable,
		PriceUSD:             in.PriceUSD,
		AvailableClasses:     classes,
		AircraftType:         in.AircraftType,
	}, nil
}
