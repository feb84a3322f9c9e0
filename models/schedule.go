package models

import "time"

// Schedule is a bookable time window, defined independently of any doctor.
type Schedule struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	StartDateTime time.Time `json:"start_date_time" gorm:"not null"`
	EndDateTime   time.Time `json:"end_date_time" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DoctorSchedule binds a doctor to one schedule window. The composite unique
// index is what lets the booking commit stay correct under concurrent
// bookings: a slot can only flip is_booked false->true once.
// Invariant: IsBooked is true iff AppointmentID is non-nil.
type DoctorSchedule struct {
	DoctorID      string    `json:"doctor_id" gorm:"type:uuid;primaryKey;uniqueIndex:idx_doctor_schedule"`
	ScheduleID    string    `json:"schedule_id" gorm:"type:uuid;primaryKey;uniqueIndex:idx_doctor_schedule"`
	IsBooked      bool      `json:"is_booked" gorm:"not null;default:false"`
	AppointmentID *string   `json:"appointment_id" gorm:"type:uuid"`
	Doctor        *Doctor   `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Schedule      *Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}
