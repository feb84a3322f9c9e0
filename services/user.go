package services

import (
	"context"

	"github.com/google/uuid"

	"care-connect/authentication"
	"care-connect/models"
)

type RegistrarStore interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile any) error
	ActiveByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) error
}

type UserService struct {
	users RegistrarStore
}

func NewUserService(users RegistrarStore) *UserService {
	return &UserService{users: users}
}

type RegisterPatientInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Address       string `json:"address"`
	PhotoURL      string `json:"photo_url"`
}

// RegisterPatient creates the identity row and the patient profile together.
func (s *UserService) RegisterPatient(ctx context.Context, in RegisterPatientInput) (*models.User, error) {
	hash, err := authentication.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Password: hash,
		Role:     models.RolePatient,
		Status:   models.StatusActive,
	}
	patient := &models.Patient{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Address:       in.Address,
		PhotoURL:      in.PhotoURL,
	}

	if err := s.users.CreateWithProfile(ctx, user, patient); err != nil {
		return nil, err
	}
	return user, nil
}

type CreateDoctorInput struct {
	Name                string  `json:"name" binding:"required"`
	Email               string  `json:"email" binding:"required,email"`
	Password            string  `json:"password" binding:"required,min=6"`
	ContactNumber       string  `json:"contact_number" binding:"required"`
	Address             string  `json:"address"`
	PhotoURL            string  `json:"photo_url"`
	RegistrationNumber  string  `json:"registration_number" binding:"required"`
	Experience          int     `json:"experience"`
	Gender              string  `json:"gender"`
	AppointmentFee      float64 `json:"appointment_fee" binding:"required,gt=0"`
	Qualification       string  `json:"qualification"`
	CurrentWorkingPlace string  `json:"current_working_place"`
	Designation         string  `json:"designation"`
}

// CreateDoctor is an admin operation.
func (s *UserService) CreateDoctor(ctx context.Context, in CreateDoctorInput) (*models.User, error) {
	hash, err := authentication.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleDoctor,
		Status:   models.StatusActive,
	}
	doctor := &models.Doctor{
		ID:                  uuid.NewString(),
		Name:                in.Name,
		Email:               in.Email,
		ContactNumber:       in.ContactNumber,
		Address:             in.Address,
		PhotoURL:            in.PhotoURL,
		RegistrationNumber:  in.RegistrationNumber,
		Experience:          in.Experience,
		Gender:              in.Gender,
		AppointmentFee:      in.AppointmentFee,
		Qualification:       in.Qualification,
		CurrentWorkingPlace: in.CurrentWorkingPlace,
		Designation:         in.Designation,
	}

	if err := s.users.CreateWithProfile(ctx, user, doctor); err != nil {
		return nil, err
	}
	return user, nil
}

type CreateAdminInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	ContactNumber string `json:"contact_number"`
}

func (s *UserService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.User, error) {
	hash, err := authentication.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	admin := &models.Admin{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
	}

	if err := s.users.CreateWithProfile(ctx, user, admin); err != nil {
		return nil, err
	}
	return user, nil
}

// Me resolves the caller's own identity record from the token email.
func (s *UserService) Me(ctx context.Context, email string) (*models.User, error) {
	return s.users.ActiveByEmail(ctx, email)
}

// ChangeStatus blocks, unblocks or soft-deletes a user. DELETED is terminal
// in practice but nothing below enforces that, admins can restore.
func (s *UserService) ChangeStatus(ctx context.Context, userID string, status models.UserStatus) error {
	return s.users.UpdateStatus(ctx, userID, status)
}
