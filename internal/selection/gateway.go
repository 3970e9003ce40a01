package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/aroya-air/seatwise/internal/domain"
)

// Failure codes surfaced by reservation gateways.
const (
	CodeReservationIDRequired = "RESERVATION_ID_REQUIRED"
	CodeReservationNotFound   = "RESERVATION_NOT_FOUND"
	CodeFetchFailed           = "RESERVATION_FETCH_FAILED"
	CodeSeatUpdateFailed      = "SEAT_SELECTION_UPDATE_FAILED"
)

// Gateway fetches reservations and persists seat-selection updates.
// Implementations return either a full reservation payload or a
// *GatewayError describing the failure.
type Gateway interface {
	FetchReservation(ctx context.Context, reservationID string) (*domain.ReservationPayload, error)
	UpdateSeatSelection(ctx context.Context, reservationID string, seats []string) (*domain.ReservationPayload, error)
}

// GatewayError is a typed gateway failure with a stable code and a
// human-readable message.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// userMessage extracts a displayable message from a gateway failure,
// falling back to the given default.
func userMessage(err error, fallback string) string {
	var ge *GatewayError
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return fallback
}
