package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type ScheduleDAO struct {
	db *gorm.DB
}

func NewScheduleDAO(db *gorm.DB) *ScheduleDAO {
	return &ScheduleDAO{db: db}
}

func (d *ScheduleDAO) CreateBatch(ctx context.Context, schedules []models.Schedule) error {
	return d.db.WithContext(ctx).Create(&schedules).Error
}

func (d *ScheduleDAO) List(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := d.db.WithContext(ctx).Order("start_date_time").Find(&schedules).Error
	return schedules, err
}

func (d *ScheduleDAO) ByID(ctx context.Context, id string) (*models.Schedule, error) {
	var schedule models.Schedule
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("schedule")
		}
		return nil, err
	}
	return &schedule, nil
}

type DoctorScheduleDAO struct {
	db *gorm.DB
}

func NewDoctorScheduleDAO(db *gorm.DB) *DoctorScheduleDAO {
	return &DoctorScheduleDAO{db: db}
}

// Create relies on the composite unique index to reject a doctor picking the
// same schedule twice.
func (d *DoctorScheduleDAO) Create(ctx context.Context, slots []models.DoctorSchedule) error {
	if err := d.db.WithContext(ctx).Create(&slots).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("schedule already selected")
		}
		return err
	}
	return nil
}

// OpenSlot is the availability precondition read. The booking commit re-checks
// is_booked with a conditional update, so a stale answer here is harmless.
func (d *DoctorScheduleDAO) OpenSlot(ctx context.Context, doctorID, scheduleID string) (*models.DoctorSchedule, error) {
	var slot models.DoctorSchedule
	err := d.db.WithContext(ctx).
		Where("doctor_id = ? AND schedule_id = ? AND is_booked = ?", doctorID, scheduleID, false).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("available slot")
		}
		return nil, err
	}
	return &slot, nil
}

func (d *DoctorScheduleDAO) ListForDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	var slots []models.DoctorSchedule
	err := d.db.WithContext(ctx).
		Preload("Schedule").
		Where("doctor_id = ?", doctorID).
		Find(&slots).Error
	return slots, err
}

// Delete removes an unbooked slot. A booked slot belongs to its appointment
// and must be released by canceling that appointment instead.
func (d *DoctorScheduleDAO) Delete(ctx context.Context, doctorID, scheduleID string) error {
	res := d.db.WithContext(ctx).
		Where("doctor_id = ? AND schedule_id = ? AND is_booked = ?", doctorID, scheduleID, false).
		Delete(&models.DoctorSchedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("available slot")
	}
	return nil
}
