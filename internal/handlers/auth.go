package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/config"
	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// RegisterRequest represents the request body for user registration.
// Doctors register with their professional details and start unapproved.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=user doctor"`

	// Doctor-only fields
	Specialty       string  `json:"specialty"`
	Qualifications  string  `json:"qualifications"`
	Experience      int     `json:"experience"`
	ConsultationFee float64 `json:"consultationFee"`
	Bio             string  `json:"bio"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Check if user already exists
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
	if user.Role == models.RoleDoctor {
		user.Specialty = req.Specialty
		user.Qualifications = req.Qualifications
		user.Experience = req.Experience
		user.ConsultationFee = req.ConsultationFee
		user.Bio = req.Bio
		// Doctors stay unbookable until an admin approves them.
		user.Approved = false
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

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		"refresh_token",
		value,
		maxAge,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken handles refreshing an access token using a refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// Prefer the HTTP-only cookie, fall back to the request body.
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		refreshTokenString = req.RefreshToken
	}

	claims, err := utils.ValidateToken(refreshTokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	// Check the token is still live in the DB.
	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		refreshTokenString, claims.UserID, false, time.Now()).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to find user associated with token: "+err.Error())
		return
	}

	// Rotate: revoke the old token, issue and store a new pair.
	storedToken.IsRevoked = true
	h.DB.Save(&storedToken)

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&newRefreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store new refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// Logout handles user logout by revoking the refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		var req RefreshTokenRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			utils.BadRequest(c, "Refresh token is required")
			return
		}
		refreshTokenString = req.RefreshToken
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND is_revoked = ?", refreshTokenString, false).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Already invalid; logout still succeeds.
			utils.SuccessMessage(c, "Logout successful")
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	storedToken.IsRevoked = true
	storedToken.ExpiresAt = time.Now()
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, "", -1)

	utils.SuccessMessage(c, "Logout successful")
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, user.Sanitize())
}

// UpdateProfileRequest represents the request body for updating user profile.
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile handles updating the currently authenticated user's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
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

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, user.Sanitize())
}
