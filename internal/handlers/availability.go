package handlers

import (
	"github.com/gin-gonic/gin"

	"mindcare-app-server/internal/booking"
	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// AvailabilityHandler handles doctor availability schedules.
type AvailabilityHandler struct {
	Booking *booking.Service
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(svc *booking.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Booking: svc}
}

// SetAvailabilityRequest represents the request body for declaring one day's
// window.
type SetAvailabilityRequest struct {
	Day         models.Weekday   `json:"day" binding:"required"`
	StartTime   models.TimeOfDay `json:"startTime"`
	EndTime     models.TimeOfDay `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

// SetAvailability handles upserting the logged-in doctor's window for a day.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	row, err := h.Booking.SetAvailability(doctorID, req.Day, req.StartTime, req.EndTime, req.IsAvailable)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, row)
}

// SetBulkAvailabilityRequest represents the request body for declaring a full
// weekly schedule at once.
type SetBulkAvailabilityRequest struct {
	Schedule []booking.AvailabilitySlot `json:"schedule" binding:"required"`
}

// SetBulkAvailability handles applying several day windows in one request.
// Days before a failing entry stay committed.
func (h *AvailabilityHandler) SetBulkAvailability(c *gin.Context) {
	var req SetBulkAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	rows, err := h.Booking.SetBulkAvailability(doctorID, req.Schedule)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.SuccessList(c, len(rows), rows)
}

// GetAvailability handles fetching the logged-in doctor's schedule.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	h.respondSchedule(c, doctorID)
}

// GetDoctorAvailability handles the public view of a doctor's schedule.
func (h *AvailabilityHandler) GetDoctorAvailability(c *gin.Context) {
	h.respondSchedule(c, c.Param("id"))
}

func (h *AvailabilityHandler) respondSchedule(c *gin.Context, doctorID string) {
	rows, err := h.Booking.GetAvailability(doctorID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}
	utils.SuccessList(c, len(rows), rows)
}

// DeleteAvailability handles removing one day from the doctor's schedule.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	day := models.Weekday(c.Param("day"))
	if err := h.Booking.DeleteAvailability(doctorID, day); err != nil {
		respondBookingError(c, err)
		return
	}

	utils.SuccessMessage(c, "Availability for "+string(day)+" deleted successfully")
}
