package events

import (
	"context"
	"time"

	"carrental/internal/domain"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationReturned  = "reservation.returned"
)

type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	VehicleID     int64     `json:"vehicle_id"`
	CustomerID    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	StartDate     string    `json:"rent_start_date"`
	EndDate       string    `json:"rent_end_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Sender adapts the hub to the reservation module's EventSender interface.
type Sender struct {
	hub *Hub
}

func NewSender(hub *Hub) *Sender {
	return &Sender{hub: hub}
}

func (s *Sender) NotifyReservationCreated(_ context.Context, r *domain.Reservation) error {
	s.hub.Broadcast(newEvent(EventReservationCreated, r))
	return nil
}

func (s *Sender) NotifyReservationStatusChanged(_ context.Context, r *domain.Reservation) error {
	eventType := EventReservationCancelled
	if r.Status == domain.ReservationReturned {
		eventType = EventReservationReturned
	}
	s.hub.Broadcast(newEvent(eventType, r))
	return nil
}

func newEvent(eventType string, r *domain.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		VehicleID:     r.VehicleID,
		CustomerID:    r.CustomerID,
		Status:        string(r.Status),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		OccurredAt:    time.Now().UTC(),
	}
}
