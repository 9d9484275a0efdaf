package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// RecordHandler handles patient consultation records.
type RecordHandler struct {
	DB *gorm.DB
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{DB: db}
}

// GetMyRecords handles fetching the logged-in patient's records.
func (h *RecordHandler) GetMyRecords(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var records []models.PatientRecord
	err := h.DB.Preload("Doctor").Preload("Appointment").
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patient records: "+err.Error())
		return
	}

	utils.SuccessList(c, len(records), records)
}

// GetDoctorRecords handles fetching records the logged-in doctor has written,
// optionally filtered by patient.
func (h *RecordHandler) GetDoctorRecords(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Preload("Patient").Preload("Appointment").
		Where("doctor_id = ?", doctorID).
		Order("created_at desc")

	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var records []models.PatientRecord
	if err := query.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patient records: "+err.Error())
		return
	}

	utils.SuccessList(c, len(records), records)
}

// GetPatientConsultationHistory handles a doctor reviewing their consultation
// history with one patient.
func (h *RecordHandler) GetPatientConsultationHistory(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var records []models.PatientRecord
	err := h.DB.Preload("Appointment").
		Where("doctor_id = ? AND patient_id = ?", doctorID, c.Param("patientId")).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch consultation history: "+err.Error())
		return
	}

	utils.SuccessList(c, len(records), records)
}

// GetRecordByID handles fetching a single record. Only the associated doctor
// or patient, or an admin, may view it.
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	var record models.PatientRecord
	err := h.DB.Preload("Patient").Preload("Doctor").Preload("Appointment").
		First(&record, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && record.PatientID != userID && record.DoctorID != userID {
		utils.Forbidden(c, "You do not have permission to view this record")
		return
	}

	utils.Success(c, record)
}

// UpdateRecordRequest represents the request body for amending a record.
type UpdateRecordRequest struct {
	Diagnosis           string `json:"diagnosis"`
	Prescription        string `json:"prescription"`
	Notes               string `json:"notes"`
	FollowUpRecommended *bool  `json:"followUpRecommended"`
	FollowUpDate        string `json:"followUpDate"`
}

// UpdateRecord handles a doctor amending one of their own records.
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var record models.PatientRecord
	if err := h.DB.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if record.DoctorID != doctorID {
		utils.Forbidden(c, "You can only update your own patient records")
		return
	}

	if req.Diagnosis != "" {
		record.Diagnosis = req.Diagnosis
	}
	if req.Prescription != "" {
		record.Prescription = req.Prescription
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	if req.FollowUpRecommended != nil {
		record.FollowUpRecommended = *req.FollowUpRecommended
		record.FollowUpDate = nil
		if *req.FollowUpRecommended && req.FollowUpDate != "" {
			followUp, err := time.ParseInLocation("2006-01-02", req.FollowUpDate, time.Local)
			if err != nil {
				utils.BadRequest(c, "Invalid followUpDate, expected YYYY-MM-DD")
				return
			}
			record.FollowUpDate = &followUp
		}
	}

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update record: "+err.Error())
		return
	}

	utils.Success(c, record)
}
