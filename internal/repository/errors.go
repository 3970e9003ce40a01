package repository

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrNoSeatsLeft = errors.New("not enough seats available")
)
