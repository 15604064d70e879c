package domain

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationReturned  ReservationStatus = "returned"
)

// IsTerminal reports whether no further transitions are allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCancelled || s == ReservationReturned
}

// Reservation is a claim on a vehicle for an inclusive date range.
// Rows are never deleted; cancellation/return is a status transition.
// Invariant: per vehicle, active reservations have pairwise-disjoint
// inclusive date ranges.
type Reservation struct {
	ID         int64             `json:"id"`
	VehicleID  int64             `json:"vehicle_id" validate:"required" gorm:"index"`
	CustomerID int64             `json:"customer_id" validate:"required" gorm:"index"`
	StartDate  time.Time         `json:"rent_start_date" gorm:"column:rent_start_date;type:date"`
	EndDate    time.Time         `json:"rent_end_date" gorm:"column:rent_end_date;type:date"`
	TotalPrice float64           `json:"total_price"`
	Status     ReservationStatus `json:"status" gorm:"type:varchar(16);index"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// VehicleSummary is the joined vehicle view returned with reservations.
type VehicleSummary struct {
	Name               string   `json:"vehicle_name"`
	RegistrationNumber string   `json:"registration_number,omitempty"`
	Type               string   `json:"type,omitempty"`
	DailyRentPrice     *float64 `json:"daily_rent_price,omitempty"`
}

// CustomerSummary is the joined customer view (admin listings only).
type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReservationDetails joins a reservation with its vehicle and, for admin
// reads, its customer.
type ReservationDetails struct {
	Reservation
	Vehicle  *VehicleSummary  `json:"vehicle,omitempty"`
	Customer *CustomerSummary `json:"customer,omitempty"`
}
