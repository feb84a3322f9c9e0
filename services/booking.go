package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"care-connect/apperrors"
	"care-connect/email"
	"care-connect/models"
)

// Stores the booking service needs. The gorm DAOs in the database package
// satisfy these; tests use in-memory fakes.
type DoctorFinder interface {
	ActiveByID(ctx context.Context, id string) (*models.Doctor, error)
}

type PatientFinder interface {
	PatientByEmail(ctx context.Context, email string) (*models.Patient, error)
}

type SlotFinder interface {
	OpenSlot(ctx context.Context, doctorID, scheduleID string) (*models.DoctorSchedule, error)
}

type AppointmentStore interface {
	CreateBooked(ctx context.Context, appt *models.Appointment, payment *models.Payment) error
	WithRelations(ctx context.Context, id string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
}

type InvoiceMailer interface {
	SendInvoice(to string, pdf []byte) error
}

type BookingService struct {
	doctors       DoctorFinder
	doctorsByMail DoctorResolver
	patients      PatientFinder
	slots         SlotFinder
	appointments  AppointmentStore
	mailer        InvoiceMailer
}

func NewBookingService(doctors DoctorFinder, doctorsByMail DoctorResolver, patients PatientFinder, slots SlotFinder, appointments AppointmentStore, mailer InvoiceMailer) *BookingService {
	return &BookingService{
		doctors:       doctors,
		doctorsByMail: doctorsByMail,
		patients:      patients,
		slots:         slots,
		appointments:  appointments,
		mailer:        mailer,
	}
}

// BookAppointment consumes one doctor-schedule slot and creates the
// appointment for it. Preconditions fail fast with their own error kind; the
// commit itself is atomic, so when two callers race for the same slot
// exactly one wins and the other gets a conflict. Nothing here is retried,
// a lost race is a legitimate business outcome.
func (s *BookingService) BookAppointment(ctx context.Context, patientEmail, doctorID, scheduleID string) (*models.Appointment, error) {
	patient, err := s.patients.PatientByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.ActiveByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	// Availability precondition. The commit re-checks this with a
	// conditional update, a stale read here only costs the loser a
	// later conflict instead of an earlier not-found.
	if _, err := s.slots.OpenSlot(ctx, doctorID, scheduleID); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:             uuid.NewString(),
		PatientID:      patient.ID,
		DoctorID:       doctor.ID,
		ScheduleID:     scheduleID,
		VideoCallingID: uuid.NewString(),
		Status:         models.AppointmentScheduled,
		PaymentStatus:  models.PaymentUnpaid,
	}
	payment := &models.Payment{
		ID:            uuid.NewString(),
		AppointmentID: appt.ID,
		Amount:        doctor.AppointmentFee,
		Status:        models.PaymentUnpaid,
	}

	if err := s.appointments.CreateBooked(ctx, appt, payment); err != nil {
		return nil, err
	}

	created, err := s.appointments.WithRelations(ctx, appt.ID)
	if err != nil {
		// The booking committed, return what we have.
		log.Println("failed to reload appointment:", err)
		created = appt
	}

	s.sendInvoice(created, payment, patientEmail)
	return created, nil
}

// sendInvoice mails the due invoice after the booking committed. Delivery
// problems never fail the booking.
func (s *BookingService) sendInvoice(appt *models.Appointment, payment *models.Payment, to string) {
	if s.mailer == nil {
		return
	}
	pdf, err := email.BuildInvoicePDF(appt, payment)
	if err != nil {
		log.Println("failed to generate invoice pdf:", err)
		return
	}
	if err := s.mailer.SendInvoice(to, pdf); err != nil {
		log.Println("failed to send invoice email:", err)
	}
}

func (s *BookingService) PatientAppointments(ctx context.Context, patientEmail string) ([]models.Appointment, error) {
	patient, err := s.patients.PatientByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListForPatient(ctx, patient.ID)
}

func (s *BookingService) DoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	if _, err := s.doctors.ActiveByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.appointments.ListForDoctor(ctx, doctorID)
}

// CompleteAppointment marks a scheduled appointment as completed. Only the
// doctor the appointment belongs to may complete it.
func (s *BookingService) CompleteAppointment(ctx context.Context, doctorEmail, id string) error {
	appt, err := s.appointments.WithRelations(ctx, id)
	if err != nil {
		return err
	}
	doctor, err := s.doctorsByMail.ByEmail(ctx, doctorEmail)
	if err != nil {
		return err
	}
	if appt.DoctorID != doctor.ID {
		return apperrors.Forbidden("appointment belongs to another doctor")
	}
	return s.appointments.UpdateStatus(ctx, id, models.AppointmentCompleted)
}

// CancelAppointment cancels a scheduled appointment and releases its slot.
// The booking patient or the booked doctor may cancel; admins may cancel any.
func (s *BookingService) CancelAppointment(ctx context.Context, callerEmail string, callerRole models.UserRole, id string) error {
	appt, err := s.appointments.WithRelations(ctx, id)
	if err != nil {
		return err
	}
	switch callerRole {
	case models.RoleAdmin:
	case models.RolePatient:
		patient, err := s.patients.PatientByEmail(ctx, callerEmail)
		if err != nil {
			return err
		}
		if appt.PatientID != patient.ID {
			return apperrors.Forbidden("appointment belongs to another patient")
		}
	case models.RoleDoctor:
		doctor, err := s.doctorsByMail.ByEmail(ctx, callerEmail)
		if err != nil {
			return err
		}
		if appt.DoctorID != doctor.ID {
			return apperrors.Forbidden("appointment belongs to another doctor")
		}
	default:
		return apperrors.Forbidden("not allowed to cancel this appointment")
	}
	return s.appointments.UpdateStatus(ctx, id, models.AppointmentCanceled)
}
