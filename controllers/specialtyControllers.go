package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"care-connect/models"
)

// SpecialtyStore is the surface the specialty endpoints need.
type SpecialtyStore interface {
	Create(ctx context.Context, specialty *models.Specialty) error
	List(ctx context.Context) ([]models.Specialty, error)
}

type SpecialtyController struct {
	specialties SpecialtyStore
}

func NewSpecialtyController(specialties SpecialtyStore) *SpecialtyController {
	return &SpecialtyController{specialties: specialties}
}

// CreateSpecialty adds a specialty to the catalog, admin only
func (ctl *SpecialtyController) CreateSpecialty(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Icon  string `json:"icon"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	specialty := &models.Specialty{
		ID:    uuid.NewString(),
		Title: req.Title,
		Icon:  req.Icon,
	}
	if err := ctl.specialties.Create(c.Request.Context(), specialty); err != nil {
		respondError(c, "failed to create specialty", err)
		return
	}

	respondOK(c, http.StatusCreated, "specialty created successfully", specialty)
}

// ListSpecialties returns the full specialty catalog
func (ctl *SpecialtyController) ListSpecialties(c *gin.Context) {
	specialties, err := ctl.specialties.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list specialties", err)
		return
	}

	respondOK(c, http.StatusOK, "specialties retrieved successfully", specialties)
}
