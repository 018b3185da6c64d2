// Package service holds the trip lifecycle core: the PLANNED→IN_PROGRESS
// state machine, the checklist gate, and the vehicle status cascade.
// No SQL lives here; the service depends on the TripStore interface so
// tests can substitute an in-memory double.
package service

import (
	"context"
	"time"

	"zoumai/internal/models"
)

// TripStore is the persistence contract the lifecycle depends on.
type TripStore interface {
	// FindOwnedByID loads a trip scoped to its driver, with checklist
	// items (templates included) and the vehicle preloaded. Returns
	// ErrTripNotFound when no such trip exists for that driver.
	FindOwnedByID(ctx context.Context, tripID, driverID uint) (*models.Trip, error)

	// Start marks the trip IN_PROGRESS with the given start time and the
	// vehicle IN_USE, as one atomic unit. It re-checks that the trip is
	// still PLANNED under a write lock and returns ErrTripNotStartable
	// when it no longer is, ErrStartNotCommitted when the unit could not
	// be committed.
	Start(ctx context.Context, tripID, vehicleID uint, startTime time.Time) (*models.Trip, error)

	// UpdateChecklistItem sets checked/notes on the item scoped to the
	// trip and returns it with its template preloaded. Returns
	// ErrItemNotFound when the item does not belong to the trip.
	UpdateChecklistItem(ctx context.Context, tripID, itemID uint, checked bool, notes *string) (*models.TripChecklistItem, error)
}

// TripLifecycle validates and executes trip transitions on behalf of the
// authenticated driver.
type TripLifecycle struct {
	trips TripStore
	now   func() time.Time
}

func NewTripLifecycle(trips TripStore) *TripLifecycle {
	return &TripLifecycle{trips: trips, now: time.Now}
}

// StartTrip transitions a PLANNED trip to IN_PROGRESS for the given
// driver, provided every required checklist item is checked, and marks
// the trip's vehicle IN_USE. Preconditions are evaluated in order:
// ownership, state, checklist.
func (s *TripLifecycle) StartTrip(ctx context.Context, tripID, driverID uint) (*models.Trip, error) {
	trip, err := s.trips.FindOwnedByID(ctx, tripID, driverID)
	if err != nil {
		return nil, err
	}

	if trip.Status != models.TripPlanned {
		return nil, ErrTripNotStartable
	}

	// Non-required items never gate the start, whatever their state.
	for _, item := range trip.ChecklistItems {
		if item.Template.Required && !item.Checked {
			return nil, ErrChecklistIncomplete
		}
	}

	return s.trips.Start(ctx, trip.ID, trip.VehicleID, s.now().UTC())
}

// UpdateChecklistItem sets the checked flag and notes of one checklist
// item on a trip owned by the driver. Empty notes clear the field. The
// trip and vehicle are never touched.
func (s *TripLifecycle) UpdateChecklistItem(ctx context.Context, tripID, itemID, driverID uint, checked bool, notes *string) (*models.TripChecklistItem, error) {
	if _, err := s.trips.FindOwnedByID(ctx, tripID, driverID); err != nil {
		return nil, err
	}
	if notes != nil && *notes == "" {
		notes = nil
	}
	return s.trips.UpdateChecklistItem(ctx, tripID, itemID, checked, notes)
}
