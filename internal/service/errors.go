package service

import "errors"

// Error kinds for the trip lifecycle. Controllers match these with
// errors.Is and translate them to HTTP statuses and user-facing text.
var (
	// ErrTripNotFound covers both a missing trip and a trip owned by
	// another driver, so callers cannot probe other drivers' trips.
	ErrTripNotFound = errors.New("trip not found")

	// ErrTripNotStartable means the trip is not in the PLANNED state.
	ErrTripNotStartable = errors.New("trip cannot be started")

	// ErrChecklistIncomplete means at least one required checklist item
	// is unchecked.
	ErrChecklistIncomplete = errors.New("required checklist items incomplete")

	// ErrItemNotFound means the checklist item does not exist under the
	// given trip.
	ErrItemNotFound = errors.New("checklist item not found")

	// ErrStartNotCommitted means the trip/vehicle dual mutation could not
	// be committed as a unit. No partial state is left behind; the caller
	// may retry.
	ErrStartNotCommitted = errors.New("trip start could not be committed")
)
