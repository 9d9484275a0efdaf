package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/utils"
)

// NotificationHandler handles a user's notification feed.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// GetNotifications handles fetching the logged-in user's notifications,
// newest first, capped at the most recent 50.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(50)

	if read := c.Query("read"); read != "" {
		query = query.Where("`read` = ?", read == "true")
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.SuccessList(c, len(notifications), notifications)
}

// findOwnNotification loads a notification and enforces that the logged-in
// user is its recipient.
func (h *NotificationHandler) findOwnNotification(c *gin.Context) (*models.Notification, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var notification models.Notification
	if err := h.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if notification.RecipientID != userID {
		utils.Forbidden(c, "You can only manage your own notifications")
		return nil, false
	}

	return &notification, true
}

// MarkAsRead handles flipping one notification's read flag.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notification, ok := h.findOwnNotification(c)
	if !ok {
		return
	}

	notification.Read = true
	if err := h.DB.Save(notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark notification as read: "+err.Error())
		return
	}

	utils.Success(c, notification)
}

// MarkAllAsRead handles flipping every unread notification for the user.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	result := h.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND `read` = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to mark all notifications as read: "+result.Error.Error())
		return
	}

	utils.SuccessMessage(c, "Marked all notifications as read")
}

// DeleteNotification handles removing one notification.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notification, ok := h.findOwnNotification(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete notification: "+err.Error())
		return
	}

	utils.SuccessMessage(c, "Notification deleted successfully")
}
