package booking

import (
	"fmt"
	"time"

	"mindcare-app-server/internal/models"
)

// BookingRequest is a patient's request for a new appointment.
type BookingRequest struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	StartTime models.TimeOfDay
	EndTime   models.TimeOfDay
	Notes     string
}

// Book decides whether the requested slot may become a new pending
// appointment. It checks, in order: that the doctor exists, is a doctor and
// is approved; that the doctor has an open window on that weekday; that the
// requested interval sits inside the window (inclusive on both ends); and
// that no active appointment already holds the same start time that day.
// The window and conflict checks plus the insert run under a per-doctor lock
// so concurrent requests for the same doctor are serialized.
func (s *Service) Book(req BookingRequest) (*models.Appointment, error) {
	doctor, err := s.users.FindByID(req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errf(KindNotFound, "Doctor not found")
	}
	if doctor.Role != models.RoleDoctor {
		return nil, errf(KindInvalidRequest, "Selected user is not a doctor")
	}
	if !doctor.Approved {
		return nil, errf(KindInvalidRequest, "This doctor has not been approved yet")
	}

	lock := s.lockDoctor(doctor.ID)
	defer lock.Unlock()

	weekday := models.WeekdayOf(req.Date)

	window, err := s.availability.FindByDoctorDay(doctor.ID, weekday)
	if err != nil {
		return nil, err
	}
	if window == nil || !window.IsAvailable {
		return nil, errf(KindUnavailable, "Doctor is not available on %s", weekday)
	}

	if req.StartTime < window.StartTime || req.EndTime > window.EndTime {
		return nil, errf(KindOutOfWindow, "Doctor is only available from %s to %s on %s",
			window.StartTime, window.EndTime, weekday)
	}

	existing, err := s.appointments.FindActiveAt(doctor.ID, req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, errf(KindConflict, "Doctor already has an appointment at this time")
	}

	appt := &models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Status:    models.StatusPending,
	}
	if err := s.appointments.Create(appt); err != nil {
		return nil, err
	}

	// Fire-and-forget; a failed notification never rolls back the booking.
	s.notifier.Notify(models.Notification{
		RecipientID:     doctor.ID,
		SenderID:        req.PatientID,
		Type:            models.NotifyAppointmentCreated,
		Message:         fmt.Sprintf("You have a new appointment request for %s at %s", req.Date.Format("Mon Jan 02 2006"), req.StartTime),
		RelatedEntityID: appt.ID,
		EntityModel:     models.EntityAppointment,
	})

	return appt, nil
}
