package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type AppointmentDAO struct {
	db *gorm.DB
}

func NewAppointmentDAO(db *gorm.DB) *AppointmentDAO {
	return &AppointmentDAO{db: db}
}

// CreateBooked commits a booking atomically: the appointment insert, the
// slot flip and the payment row all land or none do. The slot update is
// conditional on is_booked=false, so when two requests race for the same
// slot the loser's update touches zero rows and the whole transaction rolls
// back with a conflict. This is the only write path for appointments.
func (d *AppointmentDAO) CreateBooked(ctx context.Context, appt *models.Appointment, payment *models.Payment) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appt).Error; err != nil {
			return err
		}

		res := tx.Model(&models.DoctorSchedule{}).
			Where("doctor_id = ? AND schedule_id = ? AND is_booked = ?", appt.DoctorID, appt.ScheduleID, false).
			Updates(map[string]any{"is_booked": true, "appointment_id": appt.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("slot already booked")
		}

		if payment != nil {
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// WithRelations reloads an appointment with its doctor, patient and schedule
// attached for response shaping.
func (d *AppointmentDAO) WithRelations(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := d.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Patient").
		Preload("Schedule").
		Where("id = ?", id).
		First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, err
	}
	return &appt, nil
}

func (d *AppointmentDAO) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := d.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Schedule").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appts).Error
	return appts, err
}

func (d *AppointmentDAO) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := d.db.WithContext(ctx).
		Preload("Patient").
		Preload("Schedule").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&appts).Error
	return appts, err
}

// UpdateStatus moves an appointment to COMPLETED or CANCELED. Canceling also
// releases the slot so it can be booked again.
func (d *AppointmentDAO) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appt models.Appointment
		if err := tx.Where("id = ?", id).First(&appt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("appointment")
			}
			return err
		}
		if appt.Status != models.AppointmentScheduled {
			return apperrors.Conflict("appointment is already " + string(appt.Status))
		}

		if err := tx.Model(&appt).Update("status", status).Error; err != nil {
			return err
		}

		if status == models.AppointmentCanceled {
			res := tx.Model(&models.DoctorSchedule{}).
				Where("appointment_id = ?", appt.ID).
				Updates(map[string]any{"is_booked": false, "appointment_id": nil})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
