package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/booking"
	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// AdminHandler handles platform administration: doctor approval and
// appointment oversight.
type AdminHandler struct {
	DB       *gorm.DB
	Notifier booking.Notifier
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB, notifier booking.Notifier) *AdminHandler {
	return &AdminHandler{DB: db, Notifier: notifier}
}

// ApproveDoctor handles approving a doctor so they become bookable.
func (h *AdminHandler) ApproveDoctor(c *gin.Context) {
	adminID, _ := middleware.GetUserIDFromContext(c)

	var doctor models.User
	err := h.DB.Where("id = ? AND role = ?", c.Param("id"), models.RoleDoctor).First(&doctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	doctor.Approved = true
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve doctor: "+err.Error())
		return
	}

	h.Notifier.Notify(models.Notification{
		RecipientID:     doctor.ID,
		SenderID:        adminID,
		Type:            models.NotifyDoctorApproved,
		Message:         "Your account has been approved. Patients can now book appointments with you.",
		RelatedEntityID: doctor.ID,
		EntityModel:     models.EntityUser,
	})

	utils.Success(c, doctor.Sanitize())
}

// GetAllAppointments handles listing every appointment on the platform.
func (h *AdminHandler) GetAllAppointments(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Doctor").Order("date asc, start_time asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.SuccessList(c, len(appointments), appointments)
}

// DeleteAppointment handles hard-deleting an appointment (admin only).
func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.SuccessMessage(c, "Appointment deleted successfully")
}
