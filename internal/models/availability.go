package models

// Availability represents a doctor's declared open window for one weekday.
// The composite unique index guarantees at most one row per (doctor, day).
type Availability struct {
	BaseModel
	DoctorID    string    `gorm:"size:36;uniqueIndex:idx_doctor_day" json:"doctorId"`
	Day         Weekday   `gorm:"size:10;uniqueIndex:idx_doctor_day" json:"day"`
	StartTime   TimeOfDay `gorm:"type:smallint" json:"startTime"`
	EndTime     TimeOfDay `gorm:"type:smallint" json:"endTime"`
	IsAvailable bool      `gorm:"default:true" json:"isAvailable"`

	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
