package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zoumai/internal/models"
	"zoumai/internal/service"
)

// ---- mock store ------------------------------------------------------------

// mockTripStore is a hand-written test double for service.TripStore.
type mockTripStore struct {
	findOwnedByID       func(ctx context.Context, tripID, driverID uint) (*models.Trip, error)
	start               func(ctx context.Context, tripID, vehicleID uint, startTime time.Time) (*models.Trip, error)
	updateChecklistItem func(ctx context.Context, tripID, itemID uint, checked bool, notes *string) (*models.TripChecklistItem, error)
}

func (m *mockTripStore) FindOwnedByID(ctx context.Context, tripID, driverID uint) (*models.Trip, error) {
	return m.findOwnedByID(ctx, tripID, driverID)
}

func (m *mockTripStore) Start(ctx context.Context, tripID, vehicleID uint, startTime time.Time) (*models.Trip, error) {
	return m.start(ctx, tripID, vehicleID, startTime)
}

func (m *mockTripStore) UpdateChecklistItem(ctx context.Context, tripID, itemID uint, checked bool, notes *string) (*models.TripChecklistItem, error) {
	return m.updateChecklistItem(ctx, tripID, itemID, checked, notes)
}

// compile-time check: mockTripStore must satisfy service.TripStore.
var _ service.TripStore = (*mockTripStore)(nil)

// ---- helpers ---------------------------------------------------------------

type itemSpec struct {
	required bool
	checked  bool
}

func plannedTrip(items ...itemSpec) *models.Trip {
	trip := &models.Trip{
		StartPoint: "Paris, France",
		EndPoint:   "Lyon, France",
		Status:     models.TripPlanned,
		DriverID:   7,
		VehicleID:  3,
	}
	trip.ID = 42
	for i, spec := range items {
		item := models.TripChecklistItem{
			TripID:   trip.ID,
			Checked:  spec.checked,
			Template: models.ChecklistItemTemplate{Required: spec.required},
		}
		item.ID = uint(i + 1)
		trip.ChecklistItems = append(trip.ChecklistItems, item)
	}
	return trip
}

// ---- StartTrip -------------------------------------------------------------

func TestStartTrip_OK(t *testing.T) {
	trip := plannedTrip(
		itemSpec{required: true, checked: true},
		itemSpec{required: false, checked: false},
	)

	var gotVehicleID uint
	var gotStart time.Time
	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(_ context.Context, tripID, driverID uint) (*models.Trip, error) {
			assert.Equal(t, trip.ID, tripID)
			assert.Equal(t, trip.DriverID, driverID)
			return trip, nil
		},
		start: func(_ context.Context, tripID, vehicleID uint, startTime time.Time) (*models.Trip, error) {
			gotVehicleID = vehicleID
			gotStart = startTime
			started := *trip
			started.Status = models.TripInProgress
			started.StartTime = &startTime
			return &started, nil
		},
	})

	started, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
	require.NoError(t, err)
	assert.Equal(t, models.TripInProgress, started.Status)
	require.NotNil(t, started.StartTime)
	assert.Equal(t, trip.VehicleID, gotVehicleID)
	assert.Equal(t, time.UTC, gotStart.Location())
	assert.WithinDuration(t, time.Now(), gotStart, 5*time.Second)
}

func TestStartTrip_NotOwned(t *testing.T) {
	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return nil, service.ErrTripNotFound
		},
		start: func(context.Context, uint, uint, time.Time) (*models.Trip, error) {
			t.Fatal("start must not be reached for an unowned trip")
			return nil, nil
		},
	})

	_, err := svc.StartTrip(context.Background(), 42, 99)
	assert.ErrorIs(t, err, service.ErrTripNotFound)
}

func TestStartTrip_NotPlanned(t *testing.T) {
	for _, status := range []string{models.TripInProgress, models.TripCompleted, models.TripCancelled} {
		t.Run(status, func(t *testing.T) {
			trip := plannedTrip(itemSpec{required: true, checked: true})
			trip.Status = status

			svc := service.NewTripLifecycle(&mockTripStore{
				findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
					return trip, nil
				},
				start: func(context.Context, uint, uint, time.Time) (*models.Trip, error) {
					t.Fatal("start must not be reached outside PLANNED")
					return nil, nil
				},
			})

			_, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
			assert.ErrorIs(t, err, service.ErrTripNotStartable)
		})
	}
}

func TestStartTrip_ChecklistIncomplete(t *testing.T) {
	trip := plannedTrip(
		itemSpec{required: true, checked: true},
		itemSpec{required: true, checked: false},
	)

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		start: func(context.Context, uint, uint, time.Time) (*models.Trip, error) {
			t.Fatal("start must not be reached with required items unchecked")
			return nil, nil
		},
	})

	_, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
	assert.ErrorIs(t, err, service.ErrChecklistIncomplete)
}

func TestStartTrip_NonRequiredItemsNeverGate(t *testing.T) {
	trip := plannedTrip(
		itemSpec{required: true, checked: true},
		itemSpec{required: false, checked: false},
		itemSpec{required: false, checked: false},
	)

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		start: func(_ context.Context, _, _ uint, startTime time.Time) (*models.Trip, error) {
			started := *trip
			started.Status = models.TripInProgress
			started.StartTime = &startTime
			return &started, nil
		},
	})

	started, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
	require.NoError(t, err)
	assert.Equal(t, models.TripInProgress, started.Status)
}

func TestStartTrip_EmptyChecklistStarts(t *testing.T) {
	trip := plannedTrip()

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		start: func(_ context.Context, _, _ uint, startTime time.Time) (*models.Trip, error) {
			started := *trip
			started.Status = models.TripInProgress
			started.StartTime = &startTime
			return &started, nil
		},
	})

	_, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
	assert.NoError(t, err)
}

func TestStartTrip_CommitFailure(t *testing.T) {
	trip := plannedTrip(itemSpec{required: true, checked: true})

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		start: func(context.Context, uint, uint, time.Time) (*models.Trip, error) {
			return nil, service.ErrStartNotCommitted
		},
	})

	_, err := svc.StartTrip(context.Background(), trip.ID, trip.DriverID)
	assert.ErrorIs(t, err, service.ErrStartNotCommitted)
}

// ---- concurrency -----------------------------------------------------------

// casTripStore mimics the store's locked state re-check: of two racing
// starts on the same PLANNED trip, exactly one may commit.
type casTripStore struct {
	mu            sync.Mutex
	trip          models.Trip
	vehicleStarts int
}

func (s *casTripStore) FindOwnedByID(_ context.Context, tripID, driverID uint) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip.ID != tripID || s.trip.DriverID != driverID {
		return nil, service.ErrTripNotFound
	}
	snapshot := s.trip
	return &snapshot, nil
}

func (s *casTripStore) Start(_ context.Context, tripID, _ uint, startTime time.Time) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip.Status != models.TripPlanned {
		return nil, service.ErrTripNotStartable
	}
	s.trip.Status = models.TripInProgress
	s.trip.StartTime = &startTime
	s.vehicleStarts++
	snapshot := s.trip
	return &snapshot, nil
}

func (s *casTripStore) UpdateChecklistItem(context.Context, uint, uint, bool, *string) (*models.TripChecklistItem, error) {
	return nil, errors.New("not used")
}

func TestStartTrip_ConcurrentStartsCommitOnce(t *testing.T) {
	store := &casTripStore{trip: *plannedTrip(itemSpec{required: true, checked: true})}
	svc := service.NewTripLifecycle(store)

	const racers = 8
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartTrip(context.Background(), store.trip.ID, store.trip.DriverID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrTripNotStartable)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, store.vehicleStarts)
	assert.Equal(t, models.TripInProgress, store.trip.Status)
}

// ---- UpdateChecklistItem ---------------------------------------------------

func TestUpdateChecklistItem_OK(t *testing.T) {
	trip := plannedTrip(itemSpec{required: true, checked: false})
	notes := "pression vérifiée"

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		updateChecklistItem: func(_ context.Context, tripID, itemID uint, checked bool, gotNotes *string) (*models.TripChecklistItem, error) {
			assert.Equal(t, trip.ID, tripID)
			assert.True(t, checked)
			require.NotNil(t, gotNotes)
			assert.Equal(t, notes, *gotNotes)
			item := trip.ChecklistItems[0]
			item.Checked = checked
			item.Notes = gotNotes
			return &item, nil
		},
	})

	item, err := svc.UpdateChecklistItem(context.Background(), trip.ID, 1, trip.DriverID, true, &notes)
	require.NoError(t, err)
	assert.True(t, item.Checked)
}

func TestUpdateChecklistItem_EmptyNotesClearField(t *testing.T) {
	trip := plannedTrip(itemSpec{required: true, checked: false})
	empty := ""

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		updateChecklistItem: func(_ context.Context, _, _ uint, _ bool, gotNotes *string) (*models.TripChecklistItem, error) {
			assert.Nil(t, gotNotes)
			return &trip.ChecklistItems[0], nil
		},
	})

	_, err := svc.UpdateChecklistItem(context.Background(), trip.ID, 1, trip.DriverID, true, &empty)
	assert.NoError(t, err)
}

func TestUpdateChecklistItem_TripNotFound(t *testing.T) {
	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return nil, service.ErrTripNotFound
		},
		updateChecklistItem: func(context.Context, uint, uint, bool, *string) (*models.TripChecklistItem, error) {
			t.Fatal("item update must not be reached without trip ownership")
			return nil, nil
		},
	})

	_, err := svc.UpdateChecklistItem(context.Background(), 42, 1, 99, true, nil)
	assert.ErrorIs(t, err, service.ErrTripNotFound)
}

func TestUpdateChecklistItem_ForeignItemNotFound(t *testing.T) {
	trip := plannedTrip(itemSpec{required: true, checked: false})

	svc := service.NewTripLifecycle(&mockTripStore{
		findOwnedByID: func(context.Context, uint, uint) (*models.Trip, error) {
			return trip, nil
		},
		updateChecklistItem: func(context.Context, uint, uint, bool, *string) (*models.TripChecklistItem, error) {
			return nil, service.ErrItemNotFound
		},
	})

	_, err := svc.UpdateChecklistItem(context.Background(), trip.ID, 777, trip.DriverID, true, nil)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}
