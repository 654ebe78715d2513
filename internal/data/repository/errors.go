package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrReferentialConflict = errors.New("record is still referenced")
	// ErrStillBooked is returned by Purge when bookings appeared after the
	// caller counted them.
	ErrStillBooked = errors.New("movie has bookings")
)

// UnknownGenreError is returned when a genre referenced by id does not exist.
type UnknownGenreError struct {
	ID int64
}

func (e *UnknownGenreError) Error() string {
	return fmt.Sprintf("genre %d does not exist", e.ID)
}
