// Package store implements the service store interfaces on GORM/Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zoumai/internal/models"
	"zoumai/internal/service"
)

// TripStore is the GORM-backed implementation of service.TripStore.
type TripStore struct {
	db *gorm.DB
}

func NewTripStore(db *gorm.DB) *TripStore {
	return &TripStore{db: db}
}

var _ service.TripStore = (*TripStore)(nil)

func (s *TripStore) FindOwnedByID(ctx context.Context, tripID, driverID uint) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).
		Where("id = ? AND driver_id = ?", tripID, driverID).
		Preload("ChecklistItems.Template").
		Preload("Vehicle").
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// Start applies both row mutations in one transaction. The trip row is
// locked FOR UPDATE and its state re-checked, so of two concurrent
// starts exactly one commits; the loser sees IN_PROGRESS and gets
// ErrTripNotStartable.
func (s *TripStore) Start(ctx context.Context, tripID, vehicleID uint, startTime time.Time) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrTripNotFound
			}
			return err
		}

		if trip.Status != models.TripPlanned {
			return service.ErrTripNotStartable
		}

		trip.Status = models.TripInProgress
		trip.StartTime = &startTime
		if err := tx.Save(&trip).Error; err != nil {
			return err
		}

		return tx.Model(&models.Vehicle{}).
			Where("id = ?", vehicleID).
			Update("status", models.VehicleInUse).Error
	})
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) || errors.Is(err, service.ErrTripNotStartable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", service.ErrStartNotCommitted, err)
	}
	return &trip, nil
}

func (s *TripStore) UpdateChecklistItem(ctx context.Context, tripID, itemID uint, checked bool, notes *string) (*models.TripChecklistItem, error) {
	var item models.TripChecklistItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND trip_id = ?", itemID, tripID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrItemNotFound
		}
		return nil, err
	}

	item.Checked = checked
	item.Notes = notes
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("Template").
		First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
