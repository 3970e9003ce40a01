// Package client implements the reservation gateway over the booking
// service's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aroya-air/seatwise/internal/domain"
	"github.com/aroya-air/seatwise/internal/selection"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

var _ selection.Gateway = (*Client)(nil)

// envelope mirrors the API's response wrapper.
type envelope struct {
	OK      bool            `json:"ok"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) FetchReservation(ctx context.Context, reservationID string) (*domain.ReservationPayload, error) {
	if strings.TrimSpace(reservationID) == "" {
		return nil, &selection.GatewayError{
			Code:    selection.CodeReservationIDRequired,
			Message: "Reservation ID is required.",
		}
	}

	u := c.baseURL + "/api/reservations/" + url.PathEscape(reservationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &selection.GatewayError{Code: selection.CodeFetchFailed, Message: err.Error()}
	}

	return c.do(req, selection.CodeFetchFailed)
}

func (c *Client) UpdateSeatSelection(ctx context.Context, reservationID string, seats []string) (*domain.ReservationPayload, error) {
	if strings.TrimSpace(reservationID) == "" {
		return nil, &selection.GatewayError{
			Code:    selection.CodeReservationIDRequired,
			Message: "Reservation ID is required.",
		}
	}

	body, err := json.Marshal(map[string][]string{"seats": seats})
	if err != nil {
		return nil, &selection.GatewayError{Code: selection.CodeSeatUpdateFailed, Message: err.Error()}
	}

	u := c.baseURL + "/api/reservations/" + url.PathEscape(reservationID) + "/seats"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return nil, &selection.GatewayError{Code: selection.CodeSeatUpdateFailed, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, selection.CodeSeatUpdateFailed)
}

// do executes the request and unwraps the envelope, translating transport
// failures and non-ok envelopes into typed gateway errors carrying
// failCode (except 404s, which map to the not-found code).
func (c *Client) do(req *http.Request, failCode string) (*domain.ReservationPayload, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &selection.GatewayError{Code: failCode, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &selection.GatewayError{
			Code:    failCode,
			Message: fmt.Sprintf("invalid response (status %d)", resp.StatusCode),
		}
	}

	if !env.OK {
		code := failCode
		if resp.StatusCode == http.StatusNotFound || env.Code == selection.CodeReservationNotFound {
			code = selection.CodeReservationNotFound
		}
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed (status %d)", resp.StatusCode)
		}
		return nil, &selection.GatewayError{Code: code, Message: msg}
	}

	var payload domain.ReservationPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, &selection.GatewayError{Code: failCode, Message: "malformed reservation payload"}
	}

	return &payload, nil
}
