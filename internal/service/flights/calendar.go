package flights

import (
	"fmt"
	"sort"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
)

// TimeParts splits a flight timestamp into the display fields the
// calendar consumes.
type TimeParts struct {
	ISO       string `json:"iso"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Weekday   string `json:"weekday"`
	UTCOffset string `json:"utc_offset"`
}

type FlightSummary struct {
	FlightID             string              `json:"flight_id"`
	Airline              string              `json:"airline"`
	FlightNumber         string              `json:"flight_number"`
	DepartureCity        string              `json:"departure_city"`
	ArrivalCity          string              `json:"arrival_city"`
	DepartureAirportCode string              `json:"departure_airport_code"`
	ArrivalAirportCode   string              `json:"arrival_airport_code"`
	Status               domain.FlightStatus `json:"status"`
	Arrival              TimeParts           `json:"arrival"`
	Departure            TimeParts           `json:"departure"`
}

type CalendarDay struct {
	Date    string          `json:"date"`
	Weekday string          `json:"weekday"`
	Flights []FlightSummary `json:"flights"`
}

type CalendarMeta struct {
	TotalFlights int    `json:"total_flights"`
	FirstArrival string `json:"first_arrival"`
	LastArrival  string `json:"last_arrival"`
}

type Calendar struct {
	Calendar []CalendarDay   `json:"calendar"`
	Flights  []FlightSummary `json:"flights"`
	Meta     *CalendarMeta   `json:"meta,omitempty"`
}

func formatOffset(t time.Time) string {
	_, secs := t.Zone()
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, secs/3600, secs%3600/60)
}

func splitTime(t time.Time) TimeParts {
	return TimeParts{
		ISO:       t.Format(time.RFC3339),
		Date:      t.Format("2006-01-02"),
		Time:      t.Format("15:04"),
		Weekday:   t.Weekday().String(),
		UTCOffset: formatOffset(t),
	}
}

func summarize(f *domain.Flight) FlightSummary {
	return FlightSummary{
		FlightID:             f.FlightID,
		Airline:              f.Airline,
		FlightNumber:         f.FlightNumber,
		DepartureCity:        f.DepartureCity,
		ArrivalCity:          f.ArrivalCity,
		DepartureAirportCode: f.DepartureAirportCode,
		ArrivalAirportCode:   f.ArrivalAirportCode,
		Status:               f.Status,
		Arrival:              splitTime(f.ArrivalTime),
		Departure:            splitTime(f.DepartureTime),
	}
}

// BuildCalendar groups flights by arrival date, in date order.
func BuildCalendar(fs []domain.Flight) *Calendar {
	byDate := make(map[string][]FlightSummary)
	summaries := make([]FlightSummary, 0, len(fs))

	for i := range fs {
		s := summarize(&fs[i])
		summaries = append(summaries, s)
		byDate[s.Arrival.Date] = append(byDate[s.Arrival.Date], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	days := make([]CalendarDay, 0, len(dates))
	for _, d := range dates {
		day, _ := time.Parse("2006-01-02", d)
		days = append(days, CalendarDay{
			Date:    d,
			Weekday: day.Weekday().String(),
			Flights: byDate[d],
		})
	}

	cal := &Calendar{Calendar: days, Flights: summaries}
	if len(dates) > 0 {
		cal.Meta = &CalendarMeta{
			TotalFlights: len(summaries),
			FirstArrival: dates[0],
			LastArrival:  dates[len(dates)-1],
		}
	}

	return cal
}
