package reservation

import (
	"context"
	"errors"
	"math"
	"time"

	"carrental/internal/domain"
	"carrental/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// overlapConstraint is the PostgreSQL exclusion constraint created by
// database.Migrate. A violation means a concurrent insert won the race
// between our in-transaction overlap check and the write.
const overlapConstraint = "reservations_no_date_overlap"

type Service struct {
	reservations ReservationRepository
	vehicles     VehicleRepository
	events       EventSender
	policy       Policy

	// now is swappable in tests; it feeds the cancellation cutoff.
	now func() time.Time
}

func NewService(reservations ReservationRepository, vehicles VehicleRepository, events EventSender) *Service {
	return &Service{
		reservations: reservations,
		vehicles:     vehicles,
		events:       events,
		now:          time.Now,
	}
}

// Create validates and prices the request, then hands the overlap check and
// the reservation+availability write to the repository as one atomic unit.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReservationRequest) (*domain.ReservationDetails, error) {
	if req.VehicleID == 0 || req.StartDate == "" || req.EndDate == "" {
		return nil, ErrValidation
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, ErrValidation
	}

	if !end.After(start) {
		return nil, ErrValidation
	}

	// Calendar-day ceiling, as billed: Jun 1 .. Jun 4 is 3 days.
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days <= 0 {
		return nil, ErrValidation
	}

	customerID, err := s.policy.ResolveRequester(actor, req.CustomerID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Fast-path rejections; the authoritative availability and overlap
	// checks run again inside CreateAllocated's transaction.
	if vehicle.AvailabilityStatus != domain.VehicleAvailable {
		return nil, ErrConflict
	}
	overlaps, err := s.reservations.HasOverlap(ctx, vehicle.ID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrConflict
	}

	total := vehicle.DailyRentPrice * float64(days)
	total = math.Round(total*100) / 100

	r := &domain.Reservation{
		VehicleID:  vehicle.ID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: total,
		Status:     domain.ReservationActive,
	}

	if err := s.reservations.CreateAllocated(ctx, r); err != nil {
		switch {
		case errors.Is(err, repository.ErrVehicleNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrVehicleUnavailable),
			errors.Is(err, repository.ErrDateOverlap):
			return nil, ErrConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23P01 exclusion_violation, 23505 unique_violation
			if (pgErr.Code == "23P01" || pgErr.Code == "23505") && pgErr.ConstraintName == overlapConstraint {
				return nil, ErrConflict
			}
		}
		return nil, err
	}

	if s.events != nil {
		_ = s.events.NotifyReservationCreated(ctx, r)
	}

	rate := vehicle.DailyRentPrice
	return &domain.ReservationDetails{
		Reservation: *r,
		Vehicle: &domain.VehicleSummary{
			Name:           vehicle.Name,
			DailyRentPrice: &rate,
		},
	}, nil
}

// Transition moves an active reservation to a terminal status and releases
// the vehicle. Allowed moves live in the policy's transition table.
func (s *Service) Transition(ctx context.Context, actor domain.Actor, reservationID int64, target domain.ReservationStatus) (*domain.Reservation, error) {
	if target != domain.ReservationCancelled && target != domain.ReservationReturned {
		return nil, ErrValidation
	}

	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.Status != domain.ReservationActive {
		return nil, ErrInvalidTransition
	}

	if err := s.policy.AuthorizeTransition(actor, r, target, s.today()); err != nil {
		return nil, err
	}

	updated, err := s.reservations.TransitionWithRelease(ctx, reservationID, target)
	if err != nil {
		// A concurrent transition may have closed the reservation between
		// our status read and the write.
		if errors.Is(err, repository.ErrReservationNotActive) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.events != nil {
		_ = s.events.NotifyReservationStatusChanged(ctx, updated)
	}

	return updated, nil
}

// List is role-scoped: admins get every reservation with customer and
// vehicle details, customers get their own with vehicle details.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.ReservationDetails, error) {
	if actor.IsAdmin() {
		return s.reservations.ListAllWithDetails(ctx)
	}
	return s.reservations.ListByCustomerWithDetails(ctx, actor.ID)
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.policy.CanView(actor, r) {
		return nil, ErrForbidden
	}
	return r, nil
}

// today truncates the clock to a UTC calendar date; the cancellation
// cutoff compares whole dates, not instants.
func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
