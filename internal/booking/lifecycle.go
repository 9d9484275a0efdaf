package booking

import (
	"fmt"
	"time"

	"mindcare-app-server/internal/models"
)

// allowedTransitions is the appointment state machine. Statuses missing from
// the map are terminal.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled, models.StatusRescheduled},
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// owns reports whether actorID owns the appointment in the given role.
func owns(actorID string, appt *models.Appointment, role models.Role) bool {
	switch role {
	case models.RoleDoctor:
		return appt.DoctorID == actorID
	case models.RoleUser:
		return appt.PatientID == actorID
	}
	return false
}

func (s *Service) findAppointment(id string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, errf(KindNotFound, "Appointment not found")
	}
	return appt, nil
}

// UpdateStatus moves an appointment to newStatus on behalf of its doctor and
// notifies the patient when the status actually changed.
func (s *Service) UpdateStatus(appointmentID string, newStatus models.AppointmentStatus, actingDoctorID, notes string) (*models.Appointment, error) {
	appt, err := s.findAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	if !owns(actingDoctorID, appt, models.RoleDoctor) {
		return nil, errf(KindForbidden, "You can only update your own appointments")
	}
	if appt.Status == newStatus {
		return appt, nil
	}
	if !canTransition(appt.Status, newStatus) {
		return nil, errf(KindInvalidTransition, "Cannot move a %s appointment to %s", appt.Status, newStatus)
	}

	appt.Status = newStatus
	if notes != "" {
		appt.Notes = notes
	}
	if err := s.appointments.Save(appt); err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		RecipientID:     appt.PatientID,
		SenderID:        actingDoctorID,
		Type:            models.NotificationType(fmt.Sprintf("appointment_%s", newStatus)),
		Message:         fmt.Sprintf("Your appointment for %s at %s has been %s", appt.Date.Format("Mon Jan 02 2006"), appt.StartTime, newStatus),
		RelatedEntityID: appt.ID,
		EntityModel:     models.EntityAppointment,
	})

	return appt, nil
}

// Cancel cancels an appointment on behalf of its patient and notifies the
// doctor.
func (s *Service) Cancel(appointmentID, actingPatientID string) (*models.Appointment, error) {
	appt, err := s.findAppointment(appointmentID)
	if err != nil {
		return nil, err
	}
	if !owns(actingPatientID, appt, models.RoleUser) {
		return nil, errf(KindForbidden, "You can only cancel your own appointments")
	}
	if !canTransition(appt.Status, models.StatusCancelled) {
		return nil, errf(KindInvalidTransition, "Cannot cancel a %s appointment", appt.Status)
	}

	appt.Status = models.StatusCancelled
	if err := s.appointments.Save(appt); err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		RecipientID:     appt.DoctorID,
		SenderID:        actingPatientID,
		Type:            models.NotifyAppointmentCancelled,
		Message:         fmt.Sprintf("The patient has cancelled their appointment for %s at %s", appt.Date.Format("Mon Jan 02 2006"), appt.StartTime),
		RelatedEntityID: appt.ID,
		EntityModel:     models.EntityAppointment,
	})

	return appt, nil
}

// CompletionInput carries the consultation outcome the doctor writes when
// completing an appointment.
type CompletionInput struct {
	Diagnosis           string
	Prescription        string
	Notes               string
	FollowUpRecommended bool
	FollowUpDate        *time.Time
}

// Complete marks a confirmed appointment completed, creates its consultation
// record and notifies the patient. A follow-up reminder is added when a
// follow-up date was supplied.
func (s *Service) Complete(appointmentID, actingDoctorID string, input CompletionInput) (*models.Appointment, *models.PatientRecord, error) {
	appt, err := s.findAppointment(appointmentID)
	if err != nil {
		return nil, nil, err
	}
	if !owns(actingDoctorID, appt, models.RoleDoctor) {
		return nil, nil, errf(KindForbidden, "You can only complete your own appointments")
	}
	if !canTransition(appt.Status, models.StatusCompleted) {
		return nil, nil, errf(KindInvalidTransition, "Cannot complete a %s appointment", appt.Status)
	}

	appt.Status = models.StatusCompleted
	if err := s.appointments.Save(appt); err != nil {
		return nil, nil, err
	}

	record := &models.PatientRecord{
		PatientID:           appt.PatientID,
		DoctorID:            actingDoctorID,
		AppointmentID:       appt.ID,
		Diagnosis:           input.Diagnosis,
		Prescription:        input.Prescription,
		Notes:               input.Notes,
		FollowUpRecommended: input.FollowUpRecommended,
	}
	if input.FollowUpRecommended {
		record.FollowUpDate = input.FollowUpDate
	}
	if err := s.records.Create(record); err != nil {
		return nil, nil, err
	}

	s.notifier.Notify(models.Notification{
		RecipientID:     appt.PatientID,
		SenderID:        actingDoctorID,
		Type:            models.NotifyAppointmentCompleted,
		Message:         "Your appointment has been completed. Your diagnosis and prescription are available.",
		RelatedEntityID: appt.ID,
		EntityModel:     models.EntityAppointment,
	})

	if input.FollowUpRecommended && input.FollowUpDate != nil {
		s.notifier.Notify(models.Notification{
			RecipientID:     appt.PatientID,
			SenderID:        actingDoctorID,
			Type:            models.NotifyFollowUpReminder,
			Message:         fmt.Sprintf("Your doctor recommends a follow-up appointment on %s", input.FollowUpDate.Format("Mon Jan 02 2006")),
			RelatedEntityID: appt.ID,
			EntityModel:     models.EntityAppointment,
		})
	}

	return appt, record, nil
}
