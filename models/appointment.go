package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCanceled  AppointmentStatus = "CANCELED"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// Appointment rows are created only through the booking transaction, never
// directly by a controller.
type Appointment struct {
	ID             string            `json:"id" gorm:"type:uuid;primaryKey"`
	PatientID      string            `json:"patient_id" gorm:"type:uuid;not null"`
	DoctorID       string            `json:"doctor_id" gorm:"type:uuid;not null"`
	ScheduleID     string            `json:"schedule_id" gorm:"type:uuid;not null"`
	VideoCallingID string            `json:"video_calling_id" gorm:"unique;not null"`
	Status         AppointmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'SCHEDULED'"`
	PaymentStatus  PaymentStatus     `json:"payment_status" gorm:"type:varchar(20);not null;default:'UNPAID'"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	Patient        *Patient          `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Doctor         *Doctor           `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Schedule       *Schedule         `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}

// Payment is the fee record opened alongside an appointment and settled
// through the payment gateway.
type Payment struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey"`
	AppointmentID string        `json:"appointment_id" gorm:"type:uuid;unique;not null"`
	Amount        float64       `json:"amount" gorm:"not null"`
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'UNPAID'"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}
