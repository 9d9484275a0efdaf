package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// IsActive reports whether the status counts toward conflict detection.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses are the statuses that block a slot from being re-booked.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// Appointment represents a booked session between a patient and a doctor.
// Date carries the calendar day; the time interval lives in StartTime/EndTime.
type Appointment struct {
	BaseModel
	PatientID string            `gorm:"size:36;index" json:"patientId"`
	DoctorID  string            `gorm:"size:36;index" json:"doctorId"`
	Date      time.Time         `gorm:"index" json:"date"`
	StartTime TimeOfDay         `gorm:"type:smallint" json:"startTime"`
	EndTime   TimeOfDay         `gorm:"type:smallint" json:"endTime"`
	Status    AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	FollowUp  bool              `gorm:"default:false" json:"followUp"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
