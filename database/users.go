package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateWithProfile inserts the identity row and its role profile in one
// transaction so a half-registered user can never exist.
func (d *UserDAO) CreateWithProfile(ctx context.Context, user *models.User, profile any) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if profile != nil {
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("email already registered")
		}
		return err
	}
	return nil
}

func (d *UserDAO) ActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, models.StatusActive).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

func (d *UserDAO) ActiveByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusActive).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, err
	}
	return &user, nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

// UpdateStatus is the only deletion path, users are soft-deleted by status.
func (d *UserDAO) UpdateStatus(ctx context.Context, id string, status models.UserStatus) error {
	res := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user")
	}
	return nil
}

func (d *UserDAO) PatientByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, err
	}
	return &patient, nil
}

func (d *UserDAO) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := d.db.WithContext(ctx).Order("name").Find(&patients).Error
	return patients, err
}

func (d *UserDAO) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	err := d.db.WithContext(ctx).Order("name").Find(&admins).Error
	return admins, err
}
