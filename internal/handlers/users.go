package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// UserHandler handles user-related requests (doctor discovery plus admin
// operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetDoctors handles fetching all approved doctors, optionally filtered by
// specialty. Accessible to patients for booking.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Where("role = ? AND approved = ?", models.RoleDoctor, true)
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}

	var doctors []models.User
	if err := query.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, doctor := range doctors {
		sanitized[i] = doctor.Sanitize()
	}

	utils.SuccessList(c, len(sanitized), sanitized)
}

// GetDoctorWithAvailability handles fetching one doctor's profile together
// with their weekly schedule.
func (h *UserHandler) GetDoctorWithAvailability(c *gin.Context) {
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

	var availability []models.Availability
	if err := h.DB.Where("doctor_id = ?", doctor.ID).Find(&availability).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability: "+err.Error())
		return
	}

	utils.Success(c, gin.H{
		"doctor":       doctor.Sanitize(),
		"availability": availability,
	})
}

// UpdateDoctorProfileRequest represents the request body for a doctor editing
// their professional profile.
type UpdateDoctorProfileRequest struct {
	Specialty       string  `json:"specialty"`
	Qualifications  string  `json:"qualifications"`
	Experience      int     `json:"experience"`
	ConsultationFee float64 `json:"consultationFee"`
	Bio             string  `json:"bio"`
	ProfileImage    string  `json:"profileImage"`
}

// UpdateDoctorProfile handles a doctor updating their professional fields.
func (h *UserHandler) UpdateDoctorProfile(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.Qualifications != "" {
		doctor.Qualifications = req.Qualifications
	}
	if req.Experience != 0 {
		doctor.Experience = req.Experience
	}
	if req.ConsultationFee != 0 {
		doctor.ConsultationFee = req.ConsultationFee
	}
	if req.Bio != "" {
		doctor.Bio = req.Bio
	}
	if req.ProfileImage != "" {
		doctor.ProfileImage = req.ProfileImage
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, doctor.Sanitize())
}

// CreateUserRequest represents the request body for creating a user by an admin.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=user doctor admin"`
}

// CreateUser handles creating a new user (admin).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.Role(req.Role),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, user.Sanitize())
}

// GetUsers handles fetching all users (admin), optionally filtered by role.
func (h *UserHandler) GetUsers(c *gin.Context) {
	query := h.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}

	utils.SuccessList(c, len(sanitized), sanitized)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a user by an admin.
type UpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role,omitempty"`
}

// UpdateUser handles updating a user by ID (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil { // partial updates
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Email != "" && req.Email != user.Email {
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, user.Sanitize())
}

// DeleteUser handles deleting a user by ID (admin). The user's appointments
// are removed with them.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Delete(&models.Appointment{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user's appointments: "+err.Error())
		return
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.SuccessMessage(c, "User deleted successfully")
}
