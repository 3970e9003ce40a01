package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/selection"
)

func okEnvelope(t *testing.T, code string, payload *domain.ReservationPayload) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"ok":      true,
		"code":    code,
		"message": "ok",
		"data":    payload,
	})
	require.NoError(t, err)
	return b
}

func TestFetchReservationSuccess(t *testing.T) {
	want := &domain.ReservationPayload{
		Reservation: domain.Reservation{
			ReservationID:  "AR-ABCD1234",
			FlightID:       "AA-1001",
			PassengerCount: 2,
		},
		SeatSelection: domain.SeatSelection{SelectedSeats: []string{"12A", "12B"}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/reservations/AR-ABCD1234", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write(okEnvelope(t, "RESERVATION_FOUND", want))
	}))
	defer srv.Close()

	got, err := New(srv.URL).FetchReservation(context.Background(), "AR-ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, want.Reservation.ReservationID, got.Reservation.ReservationID)
	assert.Equal(t, []string{"12A", "12B"}, got.SeatSelection.SelectedSeats)
}

func TestFetchReservationEmptyID(t *testing.T) {
	_, err := New("http://example.invalid").FetchReservation(context.Background(), "  ")

	var ge *selection.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, selection.CodeReservationIDRequired, ge.Code)
}

func TestFetchReservationNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"ok":      false,
			"code":    "RESERVATION_NOT_FOUND",
			"message": "Reservation not found.",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchReservation(context.Background(), "AR-MISSING1")

	var ge *selection.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, selection.CodeReservationNotFound, ge.Code)
	assert.Equal(t, "Reservation not found.", ge.Message)
}

func TestFetchReservationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "code": "INTERNAL_ERROR"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchReservation(context.Background(), "AR-ABCD1234")

	var ge *selection.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, selection.CodeFetchFailed, ge.Code)
	assert.Equal(t, "request failed (status 500)", ge.Message)
}

func TestFetchReservationBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchReservation(context.Background(), "AR-ABCD1234")

	var ge *selection.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, selection.CodeFetchFailed, ge.Code)
}

func TestUpdateSeatSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/reservations/AR-ABCD1234/seats", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Seats []string `json:"seats"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"14C", "14D"}, body.Seats)

		w.Write(okEnvelope(t, "SEAT_SELECTION_UPDATED", &domain.ReservationPayload{
			SeatSelection: domain.SeatSelection{SelectedSeats: body.Seats},
		}))
	}))
	defer srv.Close()

	got, err := New(srv.URL).UpdateSeatSelection(context.Background(), "AR-ABCD1234", []string{"14C", "14D"})
	require.NoError(t, err)
	assert.Equal(t, []string{"14C", "14D"}, got.SeatSelection.SelectedSeats)
}

func TestUpdateSeatSelectionFailureCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"ok":      false,
			"code":    "SEAT_SELECTION_UPDATE_FAILED",
			"message": "Seats no longer available.",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).UpdateSeatSelection(context.Background(), "AR-ABCD1234", []string{"14C"})

	var ge *selection.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, selection.CodeSeatUpdateFailed, ge.Code)
	assert.Equal(t, "Seats no longer available.", ge.Message)
}
