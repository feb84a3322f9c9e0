package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"care-connect/apperrors"
	"care-connect/models"
)

type ScheduleStore interface {
	CreateBatch(ctx context.Context, schedules []models.Schedule) error
	List(ctx context.Context) ([]models.Schedule, error)
	ByID(ctx context.Context, id string) (*models.Schedule, error)
}

type DoctorScheduleStore interface {
	Create(ctx context.Context, slots []models.DoctorSchedule) error
	ListForDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	Delete(ctx context.Context, doctorID, scheduleID string) error
}

type DoctorResolver interface {
	ByEmail(ctx context.Context, email string) (*models.Doctor, error)
}

type ScheduleService struct {
	schedules       ScheduleStore
	doctorSchedules DoctorScheduleStore
	doctors         DoctorResolver
}

func NewScheduleService(schedules ScheduleStore, doctorSchedules DoctorScheduleStore, doctors DoctorResolver) *ScheduleService {
	return &ScheduleService{
		schedules:       schedules,
		doctorSchedules: doctorSchedules,
		doctors:         doctors,
	}
}

// CreateSchedules splits the given window into fixed-length slots and stores
// one schedule per slot. An interval of zero stores the window as a single
// schedule.
func (s *ScheduleService) CreateSchedules(ctx context.Context, start, end time.Time, interval time.Duration) ([]models.Schedule, error) {
	if !end.After(start) {
		return nil, apperrors.Validation("end must be after start")
	}
	if interval < 0 {
		return nil, apperrors.Validation("interval must not be negative")
	}

	schedules := splitWindow(start, end, interval)
	if len(schedules) == 0 {
		return nil, apperrors.Validation("interval is longer than the window")
	}
	if err := s.schedules.CreateBatch(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// splitWindow divides the window into interval-sized schedules. A trailing
// remainder shorter than the interval is dropped.
func splitWindow(start, end time.Time, interval time.Duration) []models.Schedule {
	if interval == 0 {
		return []models.Schedule{{ID: uuid.NewString(), StartDateTime: start, EndDateTime: end}}
	}

	var schedules []models.Schedule
	for t := start; !t.Add(interval).After(end); t = t.Add(interval) {
		schedules = append(schedules, models.Schedule{
			ID:            uuid.NewString(),
			StartDateTime: t,
			EndDateTime:   t.Add(interval),
		})
	}
	return schedules
}

func (s *ScheduleService) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return s.schedules.List(ctx)
}

// SelectSchedules binds the calling doctor to the given schedule windows.
// Picking an already-selected schedule conflicts on the unique pair.
func (s *ScheduleService) SelectSchedules(ctx context.Context, doctorEmail string, scheduleIDs []string) ([]models.DoctorSchedule, error) {
	if len(scheduleIDs) == 0 {
		return nil, apperrors.Validation("at least one schedule id is required")
	}

	doctor, err := s.doctors.ByEmail(ctx, doctorEmail)
	if err != nil {
		return nil, err
	}

	slots := make([]models.DoctorSchedule, 0, len(scheduleIDs))
	for _, scheduleID := range scheduleIDs {
		if _, err := s.schedules.ByID(ctx, scheduleID); err != nil {
			return nil, err
		}
		slots = append(slots, models.DoctorSchedule{
			DoctorID:   doctor.ID,
			ScheduleID: scheduleID,
		})
	}

	if err := s.doctorSchedules.Create(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *ScheduleService) MySchedules(ctx context.Context, doctorEmail string) ([]models.DoctorSchedule, error) {
	doctor, err := s.doctors.ByEmail(ctx, doctorEmail)
	if err != nil {
		return nil, err
	}
	return s.doctorSchedules.ListForDoctor(ctx, doctor.ID)
}

// RemoveSchedule drops an unbooked slot from the doctor's offering.
func (s *ScheduleService) RemoveSchedule(ctx context.Context, doctorEmail, scheduleID string) error {
	doctor, err := s.doctors.ByEmail(ctx, doctorEmail)
	if err != nil {
		return err
	}
	return s.doctorSchedules.Delete(ctx, doctor.ID, scheduleID)
}
