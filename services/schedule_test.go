package services

import (
	"context"
	"testing"
	"time"

	"care-connect/apperrors"
	"care-connect/models"
)

func TestSplitWindow(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	schedules := splitWindow(start, end, 30*time.Minute)
	if len(schedules) != 3 {
		t.Fatalf("expected 3 schedules, got %d", len(schedules))
	}
	if !schedules[0].StartDateTime.Equal(start) {
		t.Fatalf("first slot should start at window start, got %s", schedules[0].StartDateTime)
	}
	if !schedules[2].EndDateTime.Equal(end) {
		t.Fatalf("last slot should end at window end, got %s", schedules[2].EndDateTime)
	}
	for _, sch := range schedules {
		if sch.EndDateTime.Sub(sch.StartDateTime) != 30*time.Minute {
			t.Fatalf("slot should be 30 minutes, got %s", sch.EndDateTime.Sub(sch.StartDateTime))
		}
		if sch.ID == "" {
			t.Fatal("slot should have an id")
		}
	}
}

func TestSplitWindowDropsRemainder(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(70 * time.Minute)

	schedules := splitWindow(start, end, 30*time.Minute)
	if len(schedules) != 2 {
		t.Fatalf("expected the 10 minute remainder to be dropped, got %d slots", len(schedules))
	}
}

func TestSplitWindowNoInterval(t *testing.T) {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	schedules := splitWindow(start, end, 0)
	if len(schedules) != 1 {
		t.Fatalf("expected a single schedule, got %d", len(schedules))
	}
	if !schedules[0].EndDateTime.Equal(end) {
		t.Fatal("single schedule should span the whole window")
	}
}

type fakeScheduleStore struct {
	schedules map[string]*models.Schedule
}

func (f *fakeScheduleStore) CreateBatch(_ context.Context, schedules []models.Schedule) error {
	for i := range schedules {
		f.schedules[schedules[i].ID] = &schedules[i]
	}
	return nil
}

func (f *fakeScheduleStore) List(_ context.Context) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeScheduleStore) ByID(_ context.Context, id string) (*models.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, apperrors.NotFound("schedule")
	}
	return s, nil
}

type fakeDoctorScheduleStore struct {
	slots map[slotKey]*models.DoctorSchedule
}

func (f *fakeDoctorScheduleStore) Create(_ context.Context, slots []models.DoctorSchedule) error {
	for _, s := range slots {
		if _, exists := f.slots[slotKey{s.DoctorID, s.ScheduleID}]; exists {
			return apperrors.Conflict("schedule already selected")
		}
	}
	for i := range slots {
		s := slots[i]
		f.slots[slotKey{s.DoctorID, s.ScheduleID}] = &s
	}
	return nil
}

func (f *fakeDoctorScheduleStore) ListForDoctor(_ context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	var out []models.DoctorSchedule
	for _, s := range f.slots {
		if s.DoctorID == doctorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeDoctorScheduleStore) Delete(_ context.Context, doctorID, scheduleID string) error {
	key := slotKey{doctorID, scheduleID}
	slot, ok := f.slots[key]
	if !ok || slot.IsBooked {
		return apperrors.NotFound("available slot")
	}
	delete(f.slots, key)
	return nil
}

type fakeDoctorResolver struct {
	doctors map[string]*models.Doctor // keyed by email
}

func (f *fakeDoctorResolver) ByEmail(_ context.Context, email string) (*models.Doctor, error) {
	d, ok := f.doctors[email]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}

func newTestScheduleService() (*ScheduleService, *fakeScheduleStore, *fakeDoctorScheduleStore) {
	schedules := &fakeScheduleStore{schedules: make(map[string]*models.Schedule)}
	slots := &fakeDoctorScheduleStore{slots: make(map[slotKey]*models.DoctorSchedule)}
	doctors := &fakeDoctorResolver{doctors: map[string]*models.Doctor{
		"gomez@clinic.test": {ID: "doc-1", Email: "gomez@clinic.test"},
	}}
	return NewScheduleService(schedules, slots, doctors), schedules, slots
}

func TestCreateSchedulesValidation(t *testing.T) {
	svc, _, _ := newTestScheduleService()
	start := time.Now()

	_, err := svc.CreateSchedules(context.Background(), start, start.Add(-time.Hour), 0)
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateSchedulesIntervalLongerThanWindow(t *testing.T) {
	svc, schedules, _ := newTestScheduleService()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	// no slot fits, so nothing may reach the store
	_, err := svc.CreateSchedules(context.Background(), start, start.Add(20*time.Minute), time.Hour)
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(schedules.schedules) != 0 {
		t.Fatalf("no schedules should be stored, got %d", len(schedules.schedules))
	}
}

func TestSelectSchedules(t *testing.T) {
	svc, schedules, slots := newTestScheduleService()
	ctx := context.Background()

	created, err := svc.CreateSchedules(ctx, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), 30*time.Minute)
	if err != nil {
		t.Fatalf("CreateSchedules failed: %v", err)
	}
	if len(schedules.schedules) != 2 {
		t.Fatalf("expected 2 stored schedules, got %d", len(schedules.schedules))
	}

	picked, err := svc.SelectSchedules(ctx, "gomez@clinic.test", []string{created[0].ID})
	if err != nil {
		t.Fatalf("SelectSchedules failed: %v", err)
	}
	if len(picked) != 1 || picked[0].DoctorID != "doc-1" {
		t.Fatalf("unexpected slots: %+v", picked)
	}
	if len(slots.slots) != 1 {
		t.Fatal("slot should be stored")
	}

	// picking the same schedule again conflicts on the unique pair
	_, err = svc.SelectSchedules(ctx, "gomez@clinic.test", []string{created[0].ID})
	if !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = svc.SelectSchedules(ctx, "gomez@clinic.test", []string{"missing"})
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not-found for unknown schedule, got %v", err)
	}
}

func TestRemoveSchedule(t *testing.T) {
	svc, _, slots := newTestScheduleService()
	ctx := context.Background()

	created, err := svc.CreateSchedules(ctx, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), 0)
	if err != nil {
		t.Fatalf("CreateSchedules failed: %v", err)
	}
	if _, err := svc.SelectSchedules(ctx, "gomez@clinic.test", []string{created[0].ID}); err != nil {
		t.Fatalf("SelectSchedules failed: %v", err)
	}

	if err := svc.RemoveSchedule(ctx, "gomez@clinic.test", created[0].ID); err != nil {
		t.Fatalf("RemoveSchedule failed: %v", err)
	}
	if len(slots.slots) != 0 {
		t.Fatal("slot should be gone")
	}

	// a booked slot cannot be removed
	slots.slots[slotKey{"doc-1", created[0].ID}] = &models.DoctorSchedule{
		DoctorID: "doc-1", ScheduleID: created[0].ID, IsBooked: true,
	}
	if err := svc.RemoveSchedule(ctx, "gomez@clinic.test", created[0].ID); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("removing a booked slot should be not-found, got %v", err)
	}
}
