package services

import (
	"context"
	"sync"
	"testing"

	"care-connect/apperrors"
	"care-connect/models"
)

type slotKey struct {
	doctorID   string
	scheduleID string
}

// fakeBookingStore implements the booking store interfaces with the same
// semantics the database package gets from postgres: the slot flip is a
// conditional compare-and-set, so concurrent commits for one slot admit a
// single winner.
type fakeBookingStore struct {
	mu           sync.Mutex
	doctors      map[string]*models.Doctor
	patients     map[string]*models.Patient
	slots        map[slotKey]*models.DoctorSchedule
	appointments map[string]*models.Appointment
	payments     map[string]*models.Payment
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		doctors:      make(map[string]*models.Doctor),
		patients:     make(map[string]*models.Patient),
		slots:        make(map[slotKey]*models.DoctorSchedule),
		appointments: make(map[string]*models.Appointment),
		payments:     make(map[string]*models.Payment),
	}
}

func (f *fakeBookingStore) ActiveByID(_ context.Context, id string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.doctors[id]
	if !ok || doc.IsDeleted {
		return nil, apperrors.NotFound("doctor")
	}
	return doc, nil
}

func (f *fakeBookingStore) ByEmail(_ context.Context, email string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, doc := range f.doctors {
		if doc.Email == email && !doc.IsDeleted {
			return doc, nil
		}
	}
	return nil, apperrors.NotFound("doctor")
}

func (f *fakeBookingStore) PatientByEmail(_ context.Context, email string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("patient")
}

func (f *fakeBookingStore) OpenSlot(_ context.Context, doctorID, scheduleID string) (*models.DoctorSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotKey{doctorID, scheduleID}]
	if !ok || slot.IsBooked {
		return nil, apperrors.NotFound("available slot")
	}
	return slot, nil
}

func (f *fakeBookingStore) CreateBooked(_ context.Context, appt *models.Appointment, payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[slotKey{appt.DoctorID, appt.ScheduleID}]
	if !ok || slot.IsBooked {
		// zero rows affected by the conditional update
		return apperrors.Conflict("slot already booked")
	}
	slot.IsBooked = true
	id := appt.ID
	slot.AppointmentID = &id
	f.appointments[appt.ID] = appt
	if payment != nil {
		f.payments[payment.ID] = payment
	}
	return nil
}

func (f *fakeBookingStore) WithRelations(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	appt.Doctor = f.doctors[appt.DoctorID]
	appt.Patient = f.patients[appt.PatientID]
	return appt, nil
}

func (f *fakeBookingStore) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListForDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id string, status models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appointments[id]
	if !ok {
		return apperrors.NotFound("appointment")
	}
	if appt.Status != models.AppointmentScheduled {
		return apperrors.Conflict("appointment is already " + string(appt.Status))
	}
	appt.Status = status
	if status == models.AppointmentCanceled {
		for _, slot := range f.slots {
			if slot.AppointmentID != nil && *slot.AppointmentID == id {
				slot.IsBooked = false
				slot.AppointmentID = nil
			}
		}
	}
	return nil
}

func seedBookingStore() *fakeBookingStore {
	store := newFakeBookingStore()
	store.doctors["doc-1"] = &models.Doctor{ID: "doc-1", Name: "Dr. Gomez", Email: "gomez@clinic.test", AppointmentFee: 500}
	store.doctors["doc-2"] = &models.Doctor{ID: "doc-2", Name: "Dr. Reyes", Email: "reyes@clinic.test", AppointmentFee: 300}
	store.doctors["doc-gone"] = &models.Doctor{ID: "doc-gone", Name: "Dr. Left", IsDeleted: true}
	store.patients["pat-1"] = &models.Patient{ID: "pat-1", Name: "Jane", Email: "jane@example.com"}
	store.patients["pat-2"] = &models.Patient{ID: "pat-2", Name: "Quinn", Email: "quinn@example.com"}
	store.slots[slotKey{"doc-1", "sch-1"}] = &models.DoctorSchedule{DoctorID: "doc-1", ScheduleID: "sch-1"}
	return store
}

func newTestBookingService(store *fakeBookingStore) *BookingService {
	return NewBookingService(store, store, store, store, store, nil)
}

func TestBookAppointment(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}
	if appt.PatientID != "pat-1" || appt.DoctorID != "doc-1" || appt.ScheduleID != "sch-1" {
		t.Fatalf("unexpected appointment fields: %+v", appt)
	}
	if appt.VideoCallingID == "" {
		t.Fatal("expected a video calling id")
	}

	slot := store.slots[slotKey{"doc-1", "sch-1"}]
	if !slot.IsBooked {
		t.Fatal("slot should be marked booked")
	}
	if slot.AppointmentID == nil || *slot.AppointmentID != appt.ID {
		t.Fatal("slot should reference the new appointment")
	}

	pay, ok := store.payments[findPaymentID(store, appt.ID)]
	if !ok {
		t.Fatal("expected a payment row for the booking")
	}
	if pay.Amount != 500 {
		t.Fatalf("payment amount should come from the doctor fee, got %v", pay.Amount)
	}
}

func findPaymentID(store *fakeBookingStore, appointmentID string) string {
	for id, p := range store.payments {
		if p.AppointmentID == appointmentID {
			return id
		}
	}
	return ""
}

func TestBookAppointmentDeletedDoctor(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	_, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-gone", "sch-1")
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not-found for deleted doctor, got %v", err)
	}
	if len(store.appointments) != 0 {
		t.Fatal("no appointment should be created")
	}
}

func TestBookAppointmentNoSlot(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	_, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-missing")
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not-found for missing slot, got %v", err)
	}
}

func TestBookAppointmentSlotAlreadyBooked(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	if _, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1"); err != nil {
		t.Fatalf("first booking should succeed: %v", err)
	}

	_, err := svc.BookAppointment(context.Background(), "quinn@example.com", "doc-1", "sch-1")
	if err == nil {
		t.Fatal("second booking for the same slot should fail")
	}
	kind := apperrors.KindOf(err)
	if kind != apperrors.KindNotFound && kind != apperrors.KindConflict {
		t.Fatalf("expected not-found or conflict, got %v", err)
	}
	if len(store.appointments) != 1 {
		t.Fatalf("expected exactly one appointment, got %d", len(store.appointments))
	}
}

func TestBookAppointmentRace(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		kind := apperrors.KindOf(err)
		if kind != apperrors.KindConflict && kind != apperrors.KindNotFound {
			t.Fatalf("loser should fail with conflict or not-found, got %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if len(store.appointments) != 1 {
		t.Fatalf("expected exactly one appointment row, got %d", len(store.appointments))
	}
	slot := store.slots[slotKey{"doc-1", "sch-1"}]
	if !slot.IsBooked || slot.AppointmentID == nil {
		t.Fatal("slot must end booked and referencing the winner")
	}
}

func TestCancelReleasesSlot(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}
	if err := svc.CancelAppointment(context.Background(), "jane@example.com", models.RolePatient, appt.ID); err != nil {
		t.Fatalf("CancelAppointment failed: %v", err)
	}

	slot := store.slots[slotKey{"doc-1", "sch-1"}]
	if slot.IsBooked || slot.AppointmentID != nil {
		t.Fatal("canceling should release the slot")
	}

	// slot is free again, someone else can take it
	if _, err := svc.BookAppointment(context.Background(), "quinn@example.com", "doc-1", "sch-1"); err != nil {
		t.Fatalf("rebooking a released slot should succeed: %v", err)
	}
}

func TestCompleteTwiceConflicts(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}
	if err := svc.CompleteAppointment(context.Background(), "gomez@clinic.test", appt.ID); err != nil {
		t.Fatalf("CompleteAppointment failed: %v", err)
	}
	if err := svc.CompleteAppointment(context.Background(), "gomez@clinic.test", appt.ID); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("completing twice should conflict, got %v", err)
	}
}

func TestCancelByOtherPatientForbidden(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	err = svc.CancelAppointment(context.Background(), "quinn@example.com", models.RolePatient, appt.ID)
	if !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("another patient canceling should be forbidden, got %v", err)
	}

	// the slot must still be held, so the other patient cannot grab it
	slot := store.slots[slotKey{"doc-1", "sch-1"}]
	if !slot.IsBooked {
		t.Fatal("slot must stay booked after a rejected cancel")
	}
	if _, err := svc.BookAppointment(context.Background(), "quinn@example.com", "doc-1", "sch-1"); err == nil {
		t.Fatal("rebooking a still-held slot should fail")
	}
	if store.appointments[appt.ID].Status != models.AppointmentScheduled {
		t.Fatal("appointment must stay scheduled")
	}
}

func TestCancelByOtherDoctorForbidden(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	err = svc.CancelAppointment(context.Background(), "reyes@clinic.test", models.RoleDoctor, appt.ID)
	if !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("another doctor canceling should be forbidden, got %v", err)
	}
}

func TestCancelByAdmin(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	if err := svc.CancelAppointment(context.Background(), "root@clinic.test", models.RoleAdmin, appt.ID); err != nil {
		t.Fatalf("admin cancel should succeed: %v", err)
	}
	slot := store.slots[slotKey{"doc-1", "sch-1"}]
	if slot.IsBooked {
		t.Fatal("admin cancel should release the slot")
	}
}

func TestCompleteByOtherDoctorForbidden(t *testing.T) {
	store := seedBookingStore()
	svc := newTestBookingService(store)

	appt, err := svc.BookAppointment(context.Background(), "jane@example.com", "doc-1", "sch-1")
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	err = svc.CompleteAppointment(context.Background(), "reyes@clinic.test", appt.ID)
	if !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("another doctor completing should be forbidden, got %v", err)
	}
	if store.appointments[appt.ID].Status != models.AppointmentScheduled {
		t.Fatal("appointment must stay scheduled")
	}
}
