package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/apperrors"
	"care-connect/models"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// respondError maps the error kind to its status and writes the failure
// envelope. Unclassified errors fall through as 500 with the message echoed.
func respondError(c *gin.Context, message string, err error) {
	c.JSON(apperrors.StatusCode(err), gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

// respondBadRequest is the shape for request binding failures.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request body",
		"error":   err.Error(),
	})
}

// callerEmail reads the email the auth middleware stored on the context.
func callerEmail(c *gin.Context) (string, bool) {
	email, ok := c.Get("email")
	if !ok {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// callerRole reads the role the auth middleware stored on the context.
func callerRole(c *gin.Context) models.UserRole {
	role, ok := c.Get("role")
	if !ok {
		return ""
	}
	r, _ := role.(models.UserRole)
	return r
}
