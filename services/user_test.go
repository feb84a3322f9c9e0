package services

import (
	"context"
	"testing"

	"care-connect/apperrors"
	"care-connect/authentication"
	"care-connect/models"
)

type fakeRegistrarStore struct {
	users    map[string]*models.User // keyed by email
	profiles []any
}

func (f *fakeRegistrarStore) CreateWithProfile(_ context.Context, user *models.User, profile any) error {
	if _, exists := f.users[user.Email]; exists {
		return apperrors.Conflict("email already registered")
	}
	f.users[user.Email] = user
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeRegistrarStore) ActiveByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok || u.Status != models.StatusActive {
		return nil, apperrors.NotFound("user")
	}
	return u, nil
}

func (f *fakeRegistrarStore) UpdateStatus(_ context.Context, id string, status models.UserStatus) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Status = status
			return nil
		}
	}
	return apperrors.NotFound("user")
}

func newTestUserService() (*UserService, *fakeRegistrarStore) {
	store := &fakeRegistrarStore{users: make(map[string]*models.User)}
	return NewUserService(store), store
}

func TestRegisterPatient(t *testing.T) {
	svc, store := newTestUserService()

	user, err := svc.RegisterPatient(context.Background(), RegisterPatientInput{
		Name:          "Jane",
		Email:         "jane@example.com",
		Password:      "secret123",
		ContactNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("RegisterPatient failed: %v", err)
	}
	if user.Role != models.RolePatient || user.Status != models.StatusActive {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Password == "secret123" {
		t.Fatal("password must be stored hashed")
	}
	if !authentication.VerifyPassword("secret123", user.Password) {
		t.Fatal("stored hash should verify against the plaintext")
	}

	if len(store.profiles) != 1 {
		t.Fatal("expected a patient profile row")
	}
	patient, ok := store.profiles[0].(*models.Patient)
	if !ok || patient.Email != "jane@example.com" {
		t.Fatalf("unexpected profile: %+v", store.profiles[0])
	}
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	in := RegisterPatientInput{Name: "Jane", Email: "jane@example.com", Password: "secret123", ContactNumber: "555-0101"}
	if _, err := svc.RegisterPatient(ctx, in); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	_, err := svc.RegisterPatient(ctx, in)
	if !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
}

func TestCreateDoctor(t *testing.T) {
	svc, store := newTestUserService()

	user, err := svc.CreateDoctor(context.Background(), CreateDoctorInput{
		Name:               "Dr. Gomez",
		Email:              "gomez@clinic.test",
		Password:           "secret123",
		ContactNumber:      "555-0102",
		RegistrationNumber: "REG-42",
		AppointmentFee:     500,
	})
	if err != nil {
		t.Fatalf("CreateDoctor failed: %v", err)
	}
	if user.Role != models.RoleDoctor {
		t.Fatalf("expected doctor role, got %q", user.Role)
	}
	doctor, ok := store.profiles[0].(*models.Doctor)
	if !ok || doctor.AppointmentFee != 500 {
		t.Fatalf("unexpected doctor profile: %+v", store.profiles[0])
	}
}

func TestChangeStatus(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()

	user, err := svc.RegisterPatient(ctx, RegisterPatientInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123", ContactNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("RegisterPatient failed: %v", err)
	}

	if err := svc.ChangeStatus(ctx, user.ID, models.StatusBlocked); err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}
	if store.users["jane@example.com"].Status != models.StatusBlocked {
		t.Fatal("status should be BLOCKED")
	}

	if _, err := svc.Me(ctx, "jane@example.com"); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("blocked user should not resolve as active, got %v", err)
	}
}
