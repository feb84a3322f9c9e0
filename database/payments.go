package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"care-connect/apperrors"
	"care-connect/models"
)

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{db: db}
}

func (d *PaymentDAO) ByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	var payment models.Payment
	err := d.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment")
		}
		return nil, err
	}
	return &payment, nil
}

// MarkPaid settles the payment and the appointment together. The conditional
// update on status keeps a double confirm from overwriting the transaction id.
func (d *PaymentDAO) MarkPaid(ctx context.Context, paymentID, transactionID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("payment")
			}
			return err
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", paymentID, models.PaymentUnpaid).
			Updates(map[string]any{"status": models.PaymentPaid, "transaction_id": transactionID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("payment already settled")
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", payment.AppointmentID).
			Update("payment_status", models.PaymentPaid).Error
	})
}
