package models

import (
	"time"
)

// PatientRecord is the consultation record a doctor writes when an
// appointment is completed.
type PatientRecord struct {
	BaseModel
	PatientID           string     `gorm:"size:36;index" json:"patientId"`
	DoctorID            string     `gorm:"size:36;index" json:"doctorId"`
	AppointmentID       string     `gorm:"size:36;index" json:"appointmentId"`
	Diagnosis           string     `gorm:"type:text" json:"diagnosis"`
	Prescription        string     `gorm:"type:text" json:"prescription"`
	Notes               string     `gorm:"type:text" json:"notes"`
	FollowUpRecommended bool       `gorm:"default:false" json:"followUpRecommended"`
	FollowUpDate        *time.Time `json:"followUpDate,omitempty"`

	// Relations
	Patient     User        `gorm:"foreignKey:PatientID" json:"-"`
	Doctor      User        `gorm:"foreignKey:DoctorID" json:"-"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
