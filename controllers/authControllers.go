package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles the credential check and token issuance
func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pair, err := ctl.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "login failed", err)
		return
	}

	respondOK(c, http.StatusOK, "login successful", pair)
}

// RefreshToken issues a new access token from a valid refresh token
func (ctl *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	accessToken, err := ctl.auth.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "failed to refresh token", err)
		return
	}

	respondOK(c, http.StatusOK, "access token generated", gin.H{"access_token": accessToken})
}

// ChangePassword swaps the caller's password after checking the old one
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := ctl.auth.ChangePassword(c.Request.Context(), email, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, "failed to change password", err)
		return
	}

	respondOK(c, http.StatusOK, "password changed with new password", nil)
}

// ForgotPassword mails a reset link to the account's address
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resetToken, err := ctl.auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, "failed to initiate password reset", err)
		return
	}

	respondOK(c, http.StatusOK, "reset link sent", gin.H{"reset_token": resetToken})
}

// ResetPassword consumes the reset token and stores the new password
func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		ID       string `json:"id" binding:"required"`
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := ctl.auth.ResetPassword(c.Request.Context(), req.Token, req.ID, req.Password); err != nil {
		respondError(c, "failed to reset password", err)
		return
	}

	respondOK(c, http.StatusOK, "password updated with new password", nil)
}
