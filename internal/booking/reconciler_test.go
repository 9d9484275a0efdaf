package booking

import (
	"strings"
	"sync"
	"testing"
	"time"

	"mindcare-app-server/internal/models"
)

func tod(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// 2026-01-05 is a Monday, 2026-01-06 a Tuesday, 2026-01-09 a Friday.

func setWindow(t *testing.T, env *testEnv, day models.Weekday, start, end string) {
	t.Helper()
	if _, err := env.svc.SetAvailability(env.doctor.ID, day, tod(t, start), tod(t, end), true); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
}

func bookReq(t *testing.T, env *testEnv, day, start, end string) BookingRequest {
	t.Helper()
	return BookingRequest{
		PatientID: env.patient.ID,
		DoctorID:  env.doctor.ID,
		Date:      date(t, day),
		StartTime: tod(t, start),
		EndTime:   tod(t, end),
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	appt, err := env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
	if appt.DoctorID != env.doctor.ID || appt.PatientID != env.patient.ID {
		t.Errorf("wrong participants: %+v", appt)
	}

	sent := env.notifier.all()
	if len(sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(sent))
	}
	if sent[0].RecipientID != env.doctor.ID || sent[0].Type != models.NotifyAppointmentCreated {
		t.Errorf("unexpected notification: %+v", sent[0])
	}
}

func TestBookSameSlotConflicts(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	if _, err := env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30")); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	secondPatient := env.users.add(models.User{
		BaseModel: models.BaseModel{ID: "patient-2"},
		Role:      models.RoleUser,
	})
	req := bookReq(t, env, "2026-01-05", "10:00", "10:30")
	req.PatientID = secondPatient.ID

	_, err := env.svc.Book(req)
	if KindOf(err) != KindConflict {
		t.Fatalf("second booking err = %v, want Conflict", err)
	}
}

func TestBookWithoutWindowIsUnavailable(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	_, err := env.svc.Book(bookReq(t, env, "2026-01-06", "10:00", "10:30"))
	if KindOf(err) != KindUnavailable {
		t.Fatalf("err = %v, want Unavailable", err)
	}
	if !strings.Contains(err.Error(), "Tuesday") {
		t.Errorf("message %q does not name the weekday", err.Error())
	}
}

func TestBookDisabledWindowIsUnavailable(t *testing.T) {
	env := newTestEnv()
	if _, err := env.svc.SetAvailability(env.doctor.ID, models.Monday, tod(t, "09:00"), tod(t, "17:00"), false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	_, err := env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30"))
	if KindOf(err) != KindUnavailable {
		t.Fatalf("err = %v, want Unavailable", err)
	}
}

func TestBookOutsideWindow(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Friday, "09:00", "12:00")

	cases := []struct {
		name       string
		start, end string
	}{
		{"after window", "13:00", "13:30"},
		{"starts too early", "08:30", "09:30"},
		{"ends too late", "11:30", "12:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Book(bookReq(t, env, "2026-01-09", tc.start, tc.end))
			if KindOf(err) != KindOutOfWindow {
				t.Fatalf("err = %v, want OutOfWindow", err)
			}
			if !strings.Contains(err.Error(), "09:00") || !strings.Contains(err.Error(), "12:00") {
				t.Errorf("message %q does not report the window", err.Error())
			}
		})
	}
}

func TestBookWindowBoundariesAreInclusive(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Friday, "09:00", "12:00")

	if _, err := env.svc.Book(bookReq(t, env, "2026-01-09", "09:00", "12:00")); err != nil {
		t.Fatalf("booking the exact window should succeed, got %v", err)
	}
}

func TestBookDoctorEligibility(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	notADoctor := env.users.add(models.User{
		BaseModel: models.BaseModel{ID: "user-3"},
		Role:      models.RoleUser,
	})
	unapproved := env.users.add(models.User{
		BaseModel: models.BaseModel{ID: "doctor-2"},
		Role:      models.RoleDoctor,
		Approved:  false,
	})

	cases := []struct {
		name     string
		doctorID string
		want     Kind
	}{
		{"unknown doctor", "missing", KindNotFound},
		{"not a doctor", notADoctor.ID, KindInvalidRequest},
		{"unapproved doctor", unapproved.ID, KindInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := bookReq(t, env, "2026-01-05", "10:00", "10:30")
			req.DoctorID = tc.doctorID
			_, err := env.svc.Book(req)
			if KindOf(err) != tc.want {
				t.Fatalf("err = %v, want kind %v", err, tc.want)
			}
		})
	}
}

func TestBookRejectionIsIdempotent(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Friday, "09:00", "12:00")

	req := bookReq(t, env, "2026-01-09", "13:00", "13:30")
	_, first := env.svc.Book(req)
	_, second := env.svc.Book(req)

	if KindOf(first) != KindOutOfWindow || KindOf(second) != KindOutOfWindow {
		t.Fatalf("repeated rejection changed kind: first=%v second=%v", first, second)
	}
}

func TestBookCancelledSlotIsRebookable(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	appt, err := env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if _, err := env.svc.Cancel(appt.ID, env.patient.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if _, err := env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30")); err != nil {
		t.Fatalf("rebooking a cancelled slot should succeed, got %v", err)
	}
}

// assertNoActiveDoubleBooking checks the conflict-freedom invariant: no two
// pending or confirmed appointments share (doctor, day, start time).
func assertNoActiveDoubleBooking(t *testing.T, env *testEnv) {
	t.Helper()
	seen := make(map[string]bool)
	for _, appt := range env.appointments.all() {
		if !appt.Status.IsActive() {
			continue
		}
		key := appt.DoctorID + appt.Date.Format("2006-01-02") + appt.StartTime.String()
		if seen[key] {
			t.Fatalf("two active appointments share slot %s", key)
		}
		seen[key] = true
	}
}

func TestSequentialBookingsPreserveConflictFreedom(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	slots := []string{"09:00", "10:00", "10:00", "11:00", "09:00", "11:00"}
	for _, start := range slots {
		end := tod(t, start) + 30
		req := bookReq(t, env, "2026-01-05", start, end.String())
		env.svc.Book(req) // conflicts are expected; invariant checked below
	}

	assertNoActiveDoubleBooking(t, env)
}

func TestConcurrentBookingsAreSerialized(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Book(bookReq(t, env, "2026-01-05", "10:00", "10:30"))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case KindOf(err) == KindConflict:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	assertNoActiveDoubleBooking(t, env)
}
