package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"carrental/internal/domain"
	"carrental/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.List)
	rg.GET("/reservations/:id", h.Get)
	rg.PATCH("/reservations/:id/status", h.UpdateStatus)
}

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "vehicle_id, rent_start_date, rent_end_date are required")
		return
	}

	details, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Reservation created successfully", details)
}

func (h *Handler) List(c *gin.Context) {
	reservations, err := h.service.List(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.writeError(c, err, "Failed to list reservations")
		return
	}

	message := "Reservations retrieved successfully"
	if len(reservations) == 0 {
		message = "No reservations found"
	}
	response.SuccessWithMessage(c, http.StatusOK, message, reservations)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	r, err := h.service.Get(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "Failed to get reservation")
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	target := domain.ReservationStatus(req.Status)
	updated, err := h.service.Transition(c.Request.Context(), actorFromContext(c), id, target)
	if err != nil {
		h.writeError(c, err, "Failed to update reservation")
		return
	}

	switch target {
	case domain.ReservationReturned:
		response.SuccessWithMessage(c, http.StatusOK, "Reservation marked as returned. Vehicle is now available.", gin.H{
			"reservation": updated,
			"vehicle": gin.H{
				"availability_status": domain.VehicleAvailable,
			},
		})
	default:
		response.SuccessWithMessage(c, http.StatusOK, "Reservation cancelled successfully", updated)
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation or vehicle not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only modify your own reservations")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "RESERVATION_CONFLICT", "Vehicle already reserved for the requested dates")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Only active reservations can be updated")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
