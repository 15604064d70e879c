package vehicle

type CreateVehicleRequest struct {
	Name               string  `json:"vehicle_name" binding:"required"`
	Type               string  `json:"type" binding:"required"`
	RegistrationNumber string  `json:"registration_number" binding:"required"`
	DailyRentPrice     float64 `json:"daily_rent_price" binding:"required"`
}

// UpdateVehicleRequest carries partial updates. availability_status is
// deliberately absent: the flag is owned by the reservation engine.
type UpdateVehicleRequest struct {
	Name               *string  `json:"vehicle_name"`
	Type               *string  `json:"type"`
	RegistrationNumber *string  `json:"registration_number"`
	DailyRentPrice     *float64 `json:"daily_rent_price"`
}
