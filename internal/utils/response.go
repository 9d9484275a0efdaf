package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData is the standard API envelope: {success, message|data}.
type ResponseData struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Data:    data,
	})
}

// SuccessMessage sends a success response carrying only a message.
func SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Message: message,
	})
}

// SuccessList sends a success response with a count alongside the data.
func SuccessList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Success: true,
		Data:    data,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ResponseData{
		Success: false,
		Message: message,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
