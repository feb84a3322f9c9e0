package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type SpecialtyDAO struct {
	db *gorm.DB
}

func NewSpecialtyDAO(db *gorm.DB) *SpecialtyDAO {
	return &SpecialtyDAO{db: db}
}

func (d *SpecialtyDAO) Create(ctx context.Context, specialty *models.Specialty) error {
	err := d.db.WithContext(ctx).Create(specialty).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("specialty already exists")
	}
	return err
}

func (d *SpecialtyDAO) List(ctx context.Context) ([]models.Specialty, error) {
	var specialties []models.Specialty
	err := d.db.WithContext(ctx).Order("title").Find(&specialties).Error
	return specialties, err
}
