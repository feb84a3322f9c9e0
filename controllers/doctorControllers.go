package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/models"
)

// DoctorLister is the read surface the doctor endpoints need.
type DoctorLister interface {
	List(ctx context.Context) ([]models.Doctor, error)
	ActiveByID(ctx context.Context, id string) (*models.Doctor, error)
	SoftDelete(ctx context.Context, id string) error
}

type DoctorController struct {
	doctors DoctorLister
}

func NewDoctorController(doctors DoctorLister) *DoctorController {
	return &DoctorController{doctors: doctors}
}

// ListDoctors returns all non-deleted doctors
func (ctl *DoctorController) ListDoctors(c *gin.Context) {
	doctors, err := ctl.doctors.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list doctors", err)
		return
	}

	respondOK(c, http.StatusOK, "doctors retrieved successfully", doctors)
}

// GetDoctor returns one doctor by id
func (ctl *DoctorController) GetDoctor(c *gin.Context) {
	doctor, err := ctl.doctors.ActiveByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to load doctor", err)
		return
	}

	respondOK(c, http.StatusOK, "doctor retrieved successfully", doctor)
}

// DeleteDoctor soft-deletes a doctor profile, admin only. The doctor's
// identity row stays, bookings against them stop.
func (ctl *DoctorController) DeleteDoctor(c *gin.Context) {
	if err := ctl.doctors.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete doctor", err)
		return
	}

	respondOK(c, http.StatusOK, "doctor deleted successfully", nil)
}
