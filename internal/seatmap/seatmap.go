// Package seatmap derives a declarative cabin layout for a reservation.
// The layout is deterministic for a given flight/reservation pair so that
// repeated fetches render the same map.
package seatmap

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
)

var seatColumns = []string{"A", "B", "C", "D", "E", "F"}

var seatTypePattern = []domain.SeatType{
	domain.SeatWindow,
	domain.SeatMiddle,
	domain.SeatAisle,
	domain.SeatAisle,
	domain.SeatMiddle,
	domain.SeatWindow,
}

const defaultSeatRows = 18

func seatTypeFor(columnIndex int) domain.SeatType {
	if columnIndex >= 0 && columnIndex < len(seatTypePattern) {
		return seatTypePattern[columnIndex]
	}
	return domain.SeatMiddle
}

func buildBaseRows(totalRows int) []domain.SeatRow {
	rows := make([]domain.SeatRow, 0, totalRows)
	for rowNumber := 1; rowNumber <= totalRows; rowNumber++ {
		seats := make([]domain.Seat, 0, len(seatColumns))
		for ci, letter := range seatColumns {
			seatID := fmt.Sprintf("%d%s", rowNumber, letter)
			seats = append(seats, domain.Seat{
				ID:      seatID,
				Display: seatID,
				Status:  domain.SeatAvailable,
				Type:    seatTypeFor(ci),
				Extra: domain.SeatExtra{
					Legroom: rowNumber == 1 || rowNumber == 2,
					ExitRow: rowNumber == 9 || rowNumber == 10,
				},
			})
		}
		rows = append(rows, domain.SeatRow{
			ID:    fmt.Sprintf("row-%d", rowNumber),
			Label: fmt.Sprintf("%d", rowNumber),
			Seats: seats,
		})
	}
	return rows
}

func seededRand(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// Build renders the cabin map for a reservation: a fixed A-F layout sized
// from the flight's reported inventory, with booked/held/pending seats
// scattered deterministically and the reservation's own assignments
// overlaid as selected.
func Build(res *domain.Reservation) domain.SeatMap {
	flight := &res.FlightDetails

	estimatedRows := flight.SeatsAvailable/len(seatColumns) + 6
	if estimatedRows < 10 {
		estimatedRows = 10
	}
	if estimatedRows > 24 {
		estimatedRows = 24
	}
	totalRows := defaultSeatRows
	if estimatedRows > totalRows {
		totalRows = estimatedRows
	}

	rows := buildBaseRows(totalRows)

	seatIDs := make([]string, 0, totalRows*len(seatColumns))
	for _, row := range rows {
		for _, seat := range row.Seats {
			seatIDs = append(seatIDs, seat.ID)
		}
	}
	capacity := len(seatIDs)

	selected := make(map[string]struct{})
	for _, id := range domain.NormalizeSeatIDs(res.SeatAssignments) {
		selected[id] = struct{}{}
	}
	for ri := range rows {
		for si := range rows[ri].Seats {
			_, ok := selected[rows[ri].Seats[si].ID]
			rows[ri].Seats[si].Selected = ok
		}
	}

	effectiveAvailable := flight.SeatsAvailable
	if effectiveAvailable > capacity {
		effectiveAvailable = capacity
	}
	if len(selected) > effectiveAvailable {
		effectiveAvailable = len(selected)
	}

	bookedTarget := capacity - effectiveAvailable
	if bookedTarget < 0 {
		bookedTarget = 0
	}
	heldTarget := bookedTarget / 4
	if heldTarget > 6 {
		heldTarget = 6
	}
	pendingTarget := effectiveAvailable / 10
	if pendingTarget > 4 {
		pendingTarget = 4
	}

	rng := seededRand(flight.FlightID + ":" + res.ReservationID)
	shuffled := append([]string(nil), seatIDs...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	booked := make(map[string]struct{}, bookedTarget)
	held := make(map[string]struct{}, heldTarget)
	pending := make(map[string]struct{}, pendingTarget)

	for _, id := range shuffled {
		if _, ok := selected[id]; ok {
			continue
		}
		if len(booked) < bookedTarget {
			booked[id] = struct{}{}
			continue
		}
		if len(held) < heldTarget {
			held[id] = struct{}{}
			continue
		}
		if len(pending) < pendingTarget {
			pending[id] = struct{}{}
			continue
		}
	}

	availableCount := 0
	for ri := range rows {
		for si := range rows[ri].Seats {
			seat := &rows[ri].Seats[si]
			switch {
			case hasID(booked, seat.ID):
				seat.Status = domain.SeatBooked
			case hasID(held, seat.ID):
				seat.Status = domain.SeatHeld
			case hasID(pending, seat.ID):
				seat.Status = domain.SeatPending
			default:
				seat.Status = domain.SeatAvailable
				if !seat.Selected {
					availableCount++
				}
			}
		}
	}

	updatedAt := res.SeatAssignmentsUpdated
	if updatedAt == nil && !res.BookedAt.IsZero() {
		bookedAt := res.BookedAt
		updatedAt = &bookedAt
	}

	layout := fmt.Sprintf("%d-%d configuration", len(seatColumns)/2, len(seatColumns)/2)

	return domain.SeatMap{
		Sections: []domain.SeatSection{
			{
				ID:       "main-cabin",
				Label:    fmt.Sprintf("%s cabin", flight.AircraftType),
				Subtitle: fmt.Sprintf("Rows 1-%d · %s", totalRows, layout),
				Rows:     rows,
			},
		},
		Meta: domain.SeatMapMeta{
			TotalSeats:     capacity,
			AvailableSeats: availableCount,
			BookedSeats:    len(booked),
			HeldSeats:      len(held),
			PendingSeats:   len(pending),
			SelectedSeats:  len(selected),
			UpdatedAt:      normalizeTime(updatedAt),
			Layout:         layout,
			Inventory: domain.SeatInventoryMeta{
				ReportedAvailable: flight.SeatsAvailable,
			},
		},
	}
}

func hasID(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}

func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
