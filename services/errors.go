// Package services holds the domain logic. Each service wraps *gorm.DB
// and exposes typed operations; controllers translate the sentinel
// errors below into HTTP responses.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an entity id (or reference code) does
// not exist. Handlers should translate this into a 404.
var ErrNotFound = errors.New("not_found")

// ErrConflict is returned when an operation collides with existing
// state: a second invoice for the same reservation, a duplicate room
// number, or no room free for the requested dates. Handlers should
// translate this into a 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is returned for an illegal reservation status
// change; the stored state is left untouched.
var ErrInvalidTransition = errors.New("invalid_transition")

// ErrValidation is returned before any persistence call when the input
// itself is malformed (checkout not after checkin, negative amounts).
var ErrValidation = errors.New("validation")

// ErrUnavailable is returned when the persistence layer is unreachable
// or fails mid-operation; any open transaction has been rolled back.
var ErrUnavailable = errors.New("unavailable")

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// wrapDBErr normalizes errors escaping a service call: record-not-found
// becomes ErrNotFound, domain errors pass through untouched, and anything
// else is surfaced as ErrUnavailable with the cause attached.
func wrapDBErr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrInvalidTransition, ErrNotFound} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
