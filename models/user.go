package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleDoctor  UserRole = "doctor"
	RolePatient UserRole = "patient"
)

type UserStatus string

const (
	StatusActive  UserStatus = "ACTIVE"
	StatusBlocked UserStatus = "BLOCKED"
	StatusDeleted UserStatus = "DELETED"
)

// User is the identity record every role shares. Users are never physically
// removed, deletion flips Status to DELETED.
type User struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'patient'"`
	Status    UserStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

type Admin struct {
	ID            string `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	Email         string `json:"email" gorm:"unique;not null"`
	ContactNumber string `json:"contact_number"`
	PhotoURL      string `json:"photo_url"`
}

type Patient struct {
	ID            string `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	Email         string `json:"email" gorm:"unique;not null"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	PhotoURL      string `json:"photo_url"`
}

type Doctor struct {
	ID                  string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name                string  `json:"name" gorm:"not null"`
	Email               string  `json:"email" gorm:"unique;not null"`
	ContactNumber       string  `json:"contact_number"`
	Address             string  `json:"address"`
	PhotoURL            string  `json:"photo_url"`
	RegistrationNumber  string  `json:"registration_number" gorm:"not null"`
	Experience          int     `json:"experience"`
	Gender              string  `json:"gender"`
	AppointmentFee      float64 `json:"appointment_fee" gorm:"not null"`
	Qualification       string  `json:"qualification"`
	CurrentWorkingPlace string  `json:"current_working_place"`
	Designation         string  `json:"designation"`
	AverageRating       float64 `json:"average_rating"`
	IsDeleted           bool    `json:"is_deleted" gorm:"not null;default:false"`
}
