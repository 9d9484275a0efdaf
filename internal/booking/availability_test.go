package booking

import (
	"strings"
	"testing"

	"mindcare-app-server/internal/models"
)

func TestSetAvailabilityUpsertsSingleRow(t *testing.T) {
	env := newTestEnv()

	first, err := env.svc.SetAvailability(env.doctor.ID, models.Monday, tod(t, "09:00"), tod(t, "17:00"), true)
	if err != nil {
		t.Fatalf("first SetAvailability: %v", err)
	}
	second, err := env.svc.SetAvailability(env.doctor.ID, models.Monday, tod(t, "10:00"), tod(t, "16:00"), true)
	if err != nil {
		t.Fatalf("second SetAvailability: %v", err)
	}

	rows, err := env.svc.GetAvailability(env.doctor.ID)
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 after repeated upsert", len(rows))
	}
	if rows[0].StartTime != tod(t, "10:00") || rows[0].EndTime != tod(t, "16:00") {
		t.Errorf("second upsert did not overwrite: %+v", rows[0])
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a new row: %s vs %s", first.ID, second.ID)
	}
}

func TestSetAvailabilityRejectsBadWeekday(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SetAvailability(env.doctor.ID, "Funday", tod(t, "09:00"), tod(t, "17:00"), true)
	if KindOf(err) != KindInvalidRequest {
		t.Fatalf("err = %v, want InvalidRequest", err)
	}
}

func TestDeleteAvailability(t *testing.T) {
	env := newTestEnv()
	setWindow(t, env, models.Monday, "09:00", "17:00")

	if err := env.svc.DeleteAvailability(env.doctor.ID, models.Monday); err != nil {
		t.Fatalf("DeleteAvailability: %v", err)
	}

	rows, _ := env.svc.GetAvailability(env.doctor.ID)
	if len(rows) != 0 {
		t.Fatalf("rows = %d after delete, want 0", len(rows))
	}
}

func TestDeleteAbsentAvailabilityIsNotFound(t *testing.T) {
	env := newTestEnv()

	err := env.svc.DeleteAvailability(env.doctor.ID, models.Tuesday)
	if KindOf(err) != KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
	if !strings.Contains(err.Error(), "Tuesday") {
		t.Errorf("message %q does not name the day", err.Error())
	}
}

func TestSetBulkAvailability(t *testing.T) {
	env := newTestEnv()

	rows, err := env.svc.SetBulkAvailability(env.doctor.ID, []AvailabilitySlot{
		{Day: models.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "17:00"), IsAvailable: true},
		{Day: models.Wednesday, StartTime: tod(t, "09:00"), EndTime: tod(t, "13:00"), IsAvailable: true},
		{Day: models.Friday, StartTime: tod(t, "09:00"), EndTime: tod(t, "12:00"), IsAvailable: false},
	})
	if err != nil {
		t.Fatalf("SetBulkAvailability: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	stored, _ := env.svc.GetAvailability(env.doctor.ID)
	if len(stored) != 3 {
		t.Fatalf("stored rows = %d, want 3", len(stored))
	}
}

func TestSetBulkAvailabilityRejectsEmptySchedule(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SetBulkAvailability(env.doctor.ID, nil)
	if KindOf(err) != KindInvalidRequest {
		t.Fatalf("err = %v, want InvalidRequest", err)
	}
}

func TestSetBulkAvailabilityPartialFailureKeepsEarlierRows(t *testing.T) {
	env := newTestEnv()

	committed, err := env.svc.SetBulkAvailability(env.doctor.ID, []AvailabilitySlot{
		{Day: models.Monday, StartTime: tod(t, "09:00"), EndTime: tod(t, "17:00"), IsAvailable: true},
		{Day: "Someday", StartTime: tod(t, "09:00"), EndTime: tod(t, "17:00"), IsAvailable: true},
		{Day: models.Friday, StartTime: tod(t, "09:00"), EndTime: tod(t, "12:00"), IsAvailable: true},
	})
	if KindOf(err) != KindInvalidRequest {
		t.Fatalf("err = %v, want InvalidRequest", err)
	}
	if len(committed) != 1 {
		t.Fatalf("committed = %d, want 1", len(committed))
	}

	stored, _ := env.svc.GetAvailability(env.doctor.ID)
	if len(stored) != 1 || stored[0].Day != models.Monday {
		t.Fatalf("earlier row not committed: %+v", stored)
	}
}
