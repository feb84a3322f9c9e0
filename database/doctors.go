package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type DoctorDAO struct {
	db *gorm.DB
}

func NewDoctorDAO(db *gorm.DB) *DoctorDAO {
	return &DoctorDAO{db: db}
}

// ActiveByID ignores soft-deleted doctors, they stay in the table but are
// invisible to booking.
func (d *DoctorDAO) ActiveByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := d.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("doctor")
		}
		return nil, err
	}
	return &doctor, nil
}

func (d *DoctorDAO) List(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := d.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("average_rating DESC").
		Find(&doctors).Error
	return doctors, err
}

func (d *DoctorDAO) ByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := d.db.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", email, false).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("doctor")
		}
		return nil, err
	}
	return &doctor, nil
}

func (d *DoctorDAO) SoftDelete(ctx context.Context, id string) error {
	res := d.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("doctor")
	}
	return nil
}
