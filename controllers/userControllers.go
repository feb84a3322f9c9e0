package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/apperrors"
	"care-connect/models"
	"care-connect/services"
)

// DirectoryStore lists the role profiles for the admin directory views.
type DirectoryStore interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	ListAdmins(ctx context.Context) ([]models.Admin, error)
}

type UserController struct {
	users     *services.UserService
	directory DirectoryStore
}

func NewUserController(users *services.UserService, directory DirectoryStore) *UserController {
	return &UserController{users: users, directory: directory}
}

// RegisterPatient creates a patient account, open to anyone
func (ctl *UserController) RegisterPatient(c *gin.Context) {
	var in services.RegisterPatientInput
	if err := c.BindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := ctl.users.RegisterPatient(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to register patient", err)
		return
	}

	respondOK(c, http.StatusCreated, "patient registered successfully", user)
}

// CreateDoctor is admin only
func (ctl *UserController) CreateDoctor(c *gin.Context) {
	var in services.CreateDoctorInput
	if err := c.BindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := ctl.users.CreateDoctor(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to create doctor", err)
		return
	}

	respondOK(c, http.StatusCreated, "doctor created successfully", user)
}

// CreateAdmin is admin only
func (ctl *UserController) CreateAdmin(c *gin.Context) {
	var in services.CreateAdminInput
	if err := c.BindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := ctl.users.CreateAdmin(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to create admin", err)
		return
	}

	respondOK(c, http.StatusCreated, "admin created successfully", user)
}

// Me returns the caller's own identity record
func (ctl *UserController) Me(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	user, err := ctl.users.Me(c.Request.Context(), email)
	if err != nil {
		respondError(c, "failed to load profile", err)
		return
	}

	respondOK(c, http.StatusOK, "profile retrieved successfully", user)
}

// ChangeStatus blocks, unblocks or soft-deletes a user, admin only
func (ctl *UserController) ChangeStatus(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	switch req.Status {
	case models.StatusActive, models.StatusBlocked, models.StatusDeleted:
	default:
		respondError(c, "failed to update status", apperrors.Validation("unknown status "+string(req.Status)))
		return
	}

	if err := ctl.users.ChangeStatus(c.Request.Context(), userID, req.Status); err != nil {
		respondError(c, "failed to update status", err)
		return
	}

	respondOK(c, http.StatusOK, "user status updated", nil)
}

// ListPatients returns all patient profiles, admin only
func (ctl *UserController) ListPatients(c *gin.Context) {
	patients, err := ctl.directory.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list patients", err)
		return
	}

	respondOK(c, http.StatusOK, "patients retrieved successfully", patients)
}

// ListAdmins returns all admin profiles, admin only
func (ctl *UserController) ListAdmins(c *gin.Context) {
	admins, err := ctl.directory.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list admins", err)
		return
	}

	respondOK(c, http.StatusOK, "admins retrieved successfully", admins)
}
