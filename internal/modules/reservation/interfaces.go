package reservation

import (
	"context"
	"time"

	"carrental/internal/domain"
)

// ReservationRepository defines the storage operations the engine needs.
type ReservationRepository interface {
	// HasOverlap is the overlap detector run outside a transaction; the
	// authoritative check runs again inside CreateAllocated. ignoreID
	// excludes one reservation (0 for none), for update-path callers.
	HasOverlap(ctx context.Context, vehicleID int64, start, end time.Time, ignoreID int64) (bool, error)
	CreateAllocated(ctx context.Context, r *domain.Reservation) error
	TransitionWithRelease(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListAllWithDetails(ctx context.Context) ([]domain.ReservationDetails, error)
	ListByCustomerWithDetails(ctx context.Context, customerID int64) ([]domain.ReservationDetails, error)
}

// VehicleRepository is the read-only vehicle view used for pricing and the
// fast-path availability rejection.
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// EventSender pushes reservation lifecycle events to live subscribers.
// May be nil; delivery failures never fail the operation.
type EventSender interface {
	NotifyReservationCreated(ctx context.Context, r *domain.Reservation) error
	NotifyReservationStatusChanged(ctx context.Context, r *domain.Reservation) error
}
