package reservation

type CreateReservationRequest struct {
	VehicleID  int64  `json:"vehicle_id" binding:"required"`
	CustomerID int64  `json:"customer_id"`
	StartDate  string `json:"rent_start_date" binding:"required"`
	EndDate    string `json:"rent_end_date" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
