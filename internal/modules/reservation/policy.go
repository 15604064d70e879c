package reservation

import (
	"time"

	"carrental/internal/domain"
)

// Policy is the pure authorization layer for the reservation engine: no
// I/O, every rule in one place. Both terminal states accept no further
// transitions, so the table below is keyed on (actor role, target status)
// with "from" always active — the service rejects non-active reservations
// before consulting it.
type Policy struct{}

type transitionKey struct {
	role   domain.UserRole
	target domain.ReservationStatus
}

type transitionRule struct {
	// requireOwnership restricts the transition to the reservation's own
	// customer.
	requireOwnership bool
	// requireBeforeStart rejects the transition once the rental period has
	// begun (today >= start date).
	requireBeforeStart bool
}

// Adding a future status (e.g. "no-show") is an entry here, not a new
// branch in the service.
var transitionTable = map[transitionKey]transitionRule{
	{domain.RoleCustomer, domain.ReservationCancelled}: {requireOwnership: true, requireBeforeStart: true},
	{domain.RoleAdmin, domain.ReservationReturned}:     {},
}

// ResolveRequester decides whose reservation is being created. Customers
// always book for themselves; a supplied customer_id naming someone else is
// refused. Admins book on behalf of a customer and must name one.
func (Policy) ResolveRequester(actor domain.Actor, requested int64) (int64, error) {
	if actor.Role == domain.RoleCustomer {
		if requested != 0 && requested != actor.ID {
			return 0, ErrForbidden
		}
		return actor.ID, nil
	}
	if requested == 0 {
		return 0, ErrValidation
	}
	return requested, nil
}

// AuthorizeTransition applies the transition table to an active
// reservation. Ownership mismatch is forbidden; a target the role cannot
// reach, or cancelling a stay that already began, is an invalid transition.
func (Policy) AuthorizeTransition(actor domain.Actor, r *domain.Reservation, target domain.ReservationStatus, today time.Time) error {
	if actor.Role == domain.RoleCustomer && r.CustomerID != actor.ID {
		return ErrForbidden
	}

	rule, ok := transitionTable[transitionKey{actor.Role, target}]
	if !ok {
		return ErrInvalidTransition
	}

	if rule.requireOwnership && r.CustomerID != actor.ID {
		return ErrForbidden
	}
	if rule.requireBeforeStart && !today.Before(r.StartDate) {
		return ErrInvalidTransition
	}

	return nil
}

// CanView reports whether the actor may read the reservation. Admins see
// everything, customers only their own.
func (Policy) CanView(actor domain.Actor, r *domain.Reservation) bool {
	return actor.IsAdmin() || r.CustomerID == actor.ID
}
