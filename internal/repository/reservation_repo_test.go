package repository

import (
	"context"
	"testing"
	"time"

	"carrental/internal/database"
	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedVehicle(t *testing.T, db *gorm.DB) *domain.Vehicle {
	t.Helper()

	v := &domain.Vehicle{
		Name:               "Toyota Corolla",
		Type:               domain.VehicleCar,
		RegistrationNumber: "KZ-001-AA",
		DailyRentPrice:     50.00,
		AvailabilityStatus: domain.VehicleAvailable,
	}
	require.NoError(t, NewVehicleRepository(db).Create(context.Background(), v))
	return v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return d
}

func allocate(t *testing.T, repo *ReservationRepository, vehicleID int64, start, end string) *domain.Reservation {
	t.Helper()

	r := &domain.Reservation{
		VehicleID:  vehicleID,
		CustomerID: 42,
		StartDate:  date(t, start),
		EndDate:    date(t, end),
		TotalPrice: 150.00,
		Status:     domain.ReservationActive,
	}
	require.NoError(t, repo.CreateAllocated(context.Background(), r))
	return r
}

func TestReservationRepository_HasOverlap_InclusiveBounds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	v := seedVehicle(t, db)

	allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"disjoint before", "2030-05-25", "2030-05-31", false},
		{"touching at start", "2030-05-28", "2030-06-01", true},
		{"touching at end", "2030-06-04", "2030-06-07", true},
		{"disjoint after", "2030-06-05", "2030-06-08", false},
		{"contained", "2030-06-02", "2030-06-03", true},
		{"containing", "2030-05-30", "2030-06-10", true},
		{"identical", "2030-06-01", "2030-06-04", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasOverlap(context.Background(), v.ID, date(t, tc.start), date(t, tc.end), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReservationRepository_HasOverlap_IgnoresGivenReservation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	v := seedVehicle(t, db)

	r := allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	got, err := repo.HasOverlap(context.Background(), v.ID, date(t, "2030-06-01"), date(t, "2030-06-04"), r.ID)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestReservationRepository_HasOverlap_IgnoresOtherVehiclesAndTerminalStates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	v := seedVehicle(t, db)

	r := allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	got, err := repo.HasOverlap(context.Background(), v.ID+1, date(t, "2030-06-01"), date(t, "2030-06-04"), 0)
	require.NoError(t, err)
	assert.False(t, got, "other vehicles have their own calendars")

	_, err = repo.TransitionWithRelease(context.Background(), r.ID, domain.ReservationCancelled)
	require.NoError(t, err)

	got, err = repo.HasOverlap(context.Background(), v.ID, date(t, "2030-06-01"), date(t, "2030-06-04"), 0)
	require.NoError(t, err)
	assert.False(t, got, "cancelled reservations free their dates")
}

// The availability flag, not only the date ranges, gates allocation: a
// second reservation for a booked vehicle must fail even when its dates
// are disjoint from every existing reservation.
func TestReservationRepository_CreateAllocated_RejectsBookedVehicleForDisjointDates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	v := seedVehicle(t, db)

	allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	second := &domain.Reservation{
		VehicleID:  v.ID,
		CustomerID: 43,
		StartDate:  date(t, "2030-07-01"),
		EndDate:    date(t, "2030-07-04"),
		TotalPrice: 150.00,
		Status:     domain.ReservationActive,
	}
	err := repo.CreateAllocated(context.Background(), second)
	assert.ErrorIs(t, err, ErrVehicleUnavailable)

	var cnt int64
	require.NoError(t, db.Model(&reservationModel{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt, "failed allocation must not leave a row behind")
}

func TestReservationRepository_CreateAllocated_UnknownVehicle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)

	r := &domain.Reservation{
		VehicleID:  777,
		CustomerID: 42,
		StartDate:  date(t, "2030-06-01"),
		EndDate:    date(t, "2030-06-04"),
		Status:     domain.ReservationActive,
	}
	err := repo.CreateAllocated(context.Background(), r)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestReservationRepository_TransitionWithRelease_FlipsVehicleBackAtomically(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	vehicles := NewVehicleRepository(db)
	v := seedVehicle(t, db)

	r := allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	booked, err := vehicles.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VehicleBooked, booked.AvailabilityStatus)

	updated, err := repo.TransitionWithRelease(context.Background(), r.ID, domain.ReservationReturned)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationReturned, updated.Status)

	released, err := vehicles.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleAvailable, released.AvailabilityStatus)
}

// Terminal states are immutable at the storage level: the update predicate
// matches only active rows, so the loser of two racing transitions cannot
// rewrite a reservation the winner already closed.
func TestReservationRepository_TransitionWithRelease_TerminalStateIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	v := seedVehicle(t, db)

	r := allocate(t, repo, v.ID, "2030-06-01", "2030-06-04")

	_, err := repo.TransitionWithRelease(context.Background(), r.ID, domain.ReservationCancelled)
	require.NoError(t, err)

	_, err = repo.TransitionWithRelease(context.Background(), r.ID, domain.ReservationReturned)
	assert.ErrorIs(t, err, ErrReservationNotActive)

	got, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, got.Status)
}
