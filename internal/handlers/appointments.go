package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mindcare-app-server/internal/booking"
	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB      *gorm.DB
	Booking *booking.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, svc *booking.Service) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Booking: svc}
}

// respondBookingError maps the booking error taxonomy to HTTP responses.
func respondBookingError(c *gin.Context, err error) {
	switch booking.KindOf(err) {
	case booking.KindNotFound:
		utils.NotFound(c, err.Error())
	case booking.KindForbidden:
		utils.Forbidden(c, err.Error())
	case booking.KindInvalidRequest, booking.KindUnavailable, booking.KindOutOfWindow,
		booking.KindConflict, booking.KindInvalidTransition:
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, "Unexpected error: "+err.Error())
	}
}

// BookAppointmentRequest represents the request body for booking an appointment.
type BookAppointmentRequest struct {
	DoctorID  string           `json:"doctorId" binding:"required,uuid"`
	Date      string           `json:"date" binding:"required"`
	StartTime models.TimeOfDay `json:"startTime"`
	EndTime   models.TimeOfDay `json:"endTime"`
	Notes     string           `json:"notes"`
}

// BookAppointment handles a patient booking a new appointment.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if _, err := uuid.Parse(req.DoctorID); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	appt, err := h.Booking.Book(booking.BookingRequest{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Created(c, appt)
}

// GetMyAppointments handles fetching the logged-in patient's appointments.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointments []models.Appointment
	err := h.DB.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date asc, start_time asc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.SuccessList(c, len(appointments), appointments)
}

// GetDoctorAppointments handles fetching the logged-in doctor's appointments,
// optionally filtered by status and date.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date asc, start_time asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date >= ? AND date < ?", date, date.AddDate(0, 0, 1))
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.SuccessList(c, len(appointments), appointments)
}

// UpdateStatusRequest represents the request body for a doctor's status update.
type UpdateStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed cancelled completed rescheduled"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus handles a doctor moving an appointment through its
// lifecycle.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Booking.UpdateStatus(c.Param("id"), req.Status, doctorID, req.Notes)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, appt)
}

// CancelAppointment handles a patient cancelling their own appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Booking.Cancel(c.Param("id"), patientID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, appt)
}

// CompleteAppointmentRequest represents the request body for completing an
// appointment with its consultation record.
type CompleteAppointmentRequest struct {
	Diagnosis           string `json:"diagnosis"`
	Prescription        string `json:"prescription"`
	Notes               string `json:"notes"`
	FollowUpRecommended bool   `json:"followUpRecommended"`
	FollowUpDate        string `json:"followUpDate"`
}

// CompleteAppointment handles a doctor completing an appointment and writing
// the patient record.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	var req CompleteAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	input := booking.CompletionInput{
		Diagnosis:           req.Diagnosis,
		Prescription:        req.Prescription,
		Notes:               req.Notes,
		FollowUpRecommended: req.FollowUpRecommended,
	}
	if req.FollowUpDate != "" {
		followUp, err := time.ParseInLocation("2006-01-02", req.FollowUpDate, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid followUpDate, expected YYYY-MM-DD")
			return
		}
		input.FollowUpDate = &followUp
	}

	appt, record, err := h.Booking.Complete(c.Param("id"), doctorID, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"appointment":   appt,
		"patientRecord": record,
	})
}
