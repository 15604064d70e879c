package reservation

import (
	"testing"
	"time"

	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_ResolveRequester(t *testing.T) {
	var p Policy

	tests := []struct {
		name      string
		actor     domain.Actor
		requested int64
		wantID    int64
		wantErr   error
	}{
		{"customer books for self", customerActor, 0, 42, nil},
		{"customer naming own id is fine", customerActor, 42, 42, nil},
		{"customer cannot name someone else", customerActor, 77, 0, ErrForbidden},
		{"admin must name a customer", adminActor, 0, 0, ErrValidation},
		{"admin books for named customer", adminActor, 77, 77, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := p.ResolveRequester(tt.actor, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestPolicy_AuthorizeTransition(t *testing.T) {
	var p Policy

	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	own := &domain.Reservation{CustomerID: customerActor.ID, StartDate: future, Status: domain.ReservationActive}
	started := &domain.Reservation{CustomerID: customerActor.ID, StartDate: past, Status: domain.ReservationActive}
	foreign := &domain.Reservation{CustomerID: 77, StartDate: future, Status: domain.ReservationActive}

	tests := []struct {
		name    string
		actor   domain.Actor
		r       *domain.Reservation
		target  domain.ReservationStatus
		wantErr error
	}{
		{"customer cancels own future", customerActor, own, domain.ReservationCancelled, nil},
		{"customer cancels own started", customerActor, started, domain.ReservationCancelled, ErrInvalidTransition},
		{"customer cancels foreign", customerActor, foreign, domain.ReservationCancelled, ErrForbidden},
		{"customer returns own", customerActor, own, domain.ReservationReturned, ErrInvalidTransition},
		{"admin returns any", adminActor, foreign, domain.ReservationReturned, nil},
		{"admin returns started", adminActor, started, domain.ReservationReturned, nil},
		{"admin cannot cancel", adminActor, foreign, domain.ReservationCancelled, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.AuthorizeTransition(tt.actor, tt.r, tt.target, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPolicy_CanView(t *testing.T) {
	var p Policy

	own := &domain.Reservation{CustomerID: customerActor.ID}
	foreign := &domain.Reservation{CustomerID: 77}

	assert.True(t, p.CanView(customerActor, own))
	assert.False(t, p.CanView(customerActor, foreign))
	assert.True(t, p.CanView(adminActor, foreign))
}
