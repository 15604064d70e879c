package domain

import "time"

type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
	VehicleVan  VehicleType = "van"
	VehicleSUV  VehicleType = "SUV"
)

type AvailabilityStatus string

const (
	VehicleAvailable AvailabilityStatus = "available"
	VehicleBooked    AvailabilityStatus = "booked"
)

// Vehicle is a unit of rentable inventory. AvailabilityStatus is owned by
// the reservation engine once the vehicle is in circulation: it is flipped
// to booked by reservation creation and back to available by a terminal
// status transition, never by vehicle updates.
type Vehicle struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"vehicle_name" validate:"required" gorm:"column:vehicle_name"`
	Type               VehicleType        `json:"type" validate:"required" gorm:"type:varchar(16)"`
	RegistrationNumber string             `json:"registration_number" validate:"required" gorm:"uniqueIndex"`
	DailyRentPrice     float64            `json:"daily_rent_price" validate:"required,gt=0"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"type:varchar(16);default:available"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
