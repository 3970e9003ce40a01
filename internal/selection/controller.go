// Package selection owns the client-side seat-selection state for one
// reservation view: the set of locally selected seats, the per-reservation
// selection limit, and the optimistic sync of confirmed selections against
// the reservation gateway.
package selection

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aroya-air/seatwise/internal/domain"
)

type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncError   SyncState = "error"
)

const (
	msgReservationIDRequired = "Reservation ID is required."
	msgLoadFailed            = "Could not load the reservation. Please try again."
	msgSaveFailed            = "Could not save your seat selection. Please try again."
)

// Controller mediates between seat-click intents, the selection-limit
// policy and the gateway's persistence call. All state is owned by the
// controller; the presentation layer dispatches intents and reads the
// derived values.
type Controller struct {
	gw Gateway

	mu            sync.Mutex
	reservationID string
	payload       *domain.ReservationPayload
	seatMap       *domain.SeatMap
	selected      []string // canonical IDs, insertion order
	confirmed     domain.SeatSelection
	syncing       bool
	errMsg        string
	dialogOpen    bool
	loadGen       uint64
}

func New(gw Gateway) *Controller {
	return &Controller{gw: gw}
}

// LoadReservation loads (or adopts a preloaded) reservation and derives
// the seat map, selected seats and confirmed selection record from it.
// A load started while an earlier one is outstanding supersedes it: the
// stale load's result is discarded when it arrives. On fetch failure all
// reservation state is cleared so no stale view remains.
func (c *Controller) LoadReservation(ctx context.Context, reservationID string, preloaded *domain.ReservationPayload) {
	reservationID = strings.TrimSpace(reservationID)

	c.mu.Lock()

	c.loadGen++
	gen := c.loadGen
	c.reservationID = reservationID

	if reservationID == "" {
		c.clearLocked(msgReservationIDRequired)
		c.mu.Unlock()
		return
	}

	if preloaded != nil {
		c.applyLocked(preloaded)
		c.mu.Unlock()
		return
	}

	c.mu.Unlock()

	payload, err := c.gw.FetchReservation(ctx, reservationID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		// Superseded by a newer load; discard.
		return
	}

	if err != nil {
		c.clearLocked(userMessage(err, msgLoadFailed))
		return
	}

	c.applyLocked(payload)
}

// ToggleSeat applies a single seat-click intent. The identifier is
// normalized (trimmed, uppercased) first. While a sync is in flight the
// intent is dropped. A seat already selected is always removed, whatever
// the map now says about it; a new seat is added only if it is available
// and the selection limit has room, otherwise a limit message is set.
// No network call is made.
func (c *Controller) ToggleSeat(seatID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payload == nil || c.syncing {
		return
	}

	id := strings.ToUpper(strings.TrimSpace(seatID))
	if id == "" {
		return
	}

	for i, cur := range c.selected {
		if cur == id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			c.errMsg = ""
			return
		}
	}

	limit := c.payload.Reservation.SeatLimit()
	if len(c.selected) >= limit {
		c.errMsg = limitMessage(limit)
		return
	}

	if seat := c.seatMap.FindSeat(id); seat == nil || seat.Status != domain.SeatAvailable {
		// Only seats the server reports available can be newly selected.
		return
	}

	c.selected = append(c.selected, id)
	c.errMsg = ""
}

// ConfirmSelection persists the selection through the gateway. When seats
// is nil the current selection is submitted. The submitted list is
// normalized, deduplicated and silently truncated to the selection limit.
// At most one confirmation is in flight at a time; re-entrant calls are
// no-ops. On success the server's payload replaces all local state; on
// failure the pre-call selection is restored and an error message set.
func (c *Controller) ConfirmSelection(ctx context.Context, seats []string) {
	c.mu.Lock()

	if c.syncing {
		c.mu.Unlock()
		return
	}

	if c.reservationID == "" || c.payload == nil {
		c.errMsg = msgReservationIDRequired
		c.mu.Unlock()
		return
	}

	submit := domain.NormalizeSeatIDs(seats)
	if seats == nil {
		submit = domain.NormalizeSeatIDs(c.selected)
	}
	if limit := c.payload.Reservation.SeatLimit(); len(submit) > limit {
		submit = submit[:limit]
	}

	snapshot := append([]string(nil), c.selected...)
	if seats != nil {
		// Explicit list: reflect it optimistically while the call runs.
		c.selected = append([]string(nil), submit...)
	}

	c.syncing = true
	c.errMsg = ""
	gen := c.loadGen
	reservationID := c.reservationID

	c.mu.Unlock()

	payload, err := c.gw.UpdateSeatSelection(ctx, reservationID, submit)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.syncing = false

	if gen != c.loadGen {
		// A newer load owns the state now; drop this result entirely.
		return
	}

	if err != nil {
		c.selected = snapshot
		c.errMsg = userMessage(err, msgSaveFailed)
		return
	}

	c.applyLocked(payload)
	c.dialogOpen = false
}

// OpenConfirmDialog marks the confirmation dialog as shown.
func (c *Controller) OpenConfirmDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = true
}

// CloseConfirmDialog marks the confirmation dialog as dismissed.
func (c *Controller) CloseConfirmDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = false
}

// SeatMap returns the current cabin map, or nil when no reservation is
// loaded. The map is read-only for callers.
func (c *Controller) SeatMap() *domain.SeatMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seatMap
}

// SelectedSeats returns the locally selected seats sorted for display.
func (c *Controller) SelectedSeats() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]string(nil), c.selected...)
	sort.Strings(out)
	return out
}

// ConfirmedSelection returns the last server-confirmed selection record.
func (c *Controller) ConfirmedSelection() domain.SeatSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed
}

// Payload returns the loaded reservation payload, or nil.
func (c *Controller) Payload() *domain.ReservationPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload
}

func (c *Controller) State() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.syncing:
		return SyncSyncing
	case c.errMsg != "":
		return SyncError
	default:
		return SyncIdle
	}
}

func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) DialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialogOpen
}

// applyLocked adopts a server payload wholesale: reservation, map,
// selection record and the local selection derived from it.
func (c *Controller) applyLocked(p *domain.ReservationPayload) {
	c.payload = p
	c.seatMap = &p.SeatMap
	c.confirmed = p.SeatSelection
	c.selected = domain.NormalizeSeatIDs(p.SeatSelection.SelectedSeats)
	c.errMsg = ""
}

func (c *Controller) clearLocked(msg string) {
	c.payload = nil
	c.seatMap = nil
	c.selected = nil
	c.confirmed = domain.SeatSelection{}
	c.errMsg = msg
}

func limitMessage(limit int) string {
	noun := "seats"
	if limit == 1 {
		noun = "seat"
	}
	return fmt.Sprintf("You can select up to %d %s.", limit, noun)
}
