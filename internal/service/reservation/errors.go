package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationIDEmpty  = errors.New("reservation id required")
)

// RateLimitedError reports a booking attempt rejected by the rate
// limiter. RetryAfter says when the caller may try again.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

// UnbookableError reports a flight whose status forbids booking.
type UnbookableError struct {
	Status string
}

func (e *UnbookableError) Error() string {
	return fmt.Sprintf("flight status is '%s'; not bookable", e.Status)
}

// ClassNotAvailableError reports a seat class the flight does not sell.
type ClassNotAvailableError struct {
	Class     string
	Available []string
}

func (e *ClassNotAvailableError) Error() string {
	return fmt.Sprintf("seat class '%s' not available", e.Class)
}

// NoSeatsError reports insufficient flight inventory.
type NoSeatsError struct {
	Available int
	Requested int
}

func (e *NoSeatsError) Error() string {
	return fmt.Sprintf("only %d seat(s) left; requested %d", e.Available, e.Requested)
}

// ValidationError reports passenger details that failed validation on a
// confirm attempt.
type ValidationError struct {
	PassengerCount int
	ProvidedValid  int
	Issues         []Issue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("passenger details failed validation (%d issue(s))", len(e.Issues))
}
