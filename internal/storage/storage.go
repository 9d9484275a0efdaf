package storage

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mindcare-app-server/internal/models"
)

// Stores bundles the gorm-backed implementations of the booking package's
// collaborator interfaces.
type Stores struct {
	Users        *UserDirectory
	Appointments *AppointmentStore
	Availability *AvailabilityStore
	Records      *RecordStore
	Notifier     *Notifier
}

// New creates all stores over a shared gorm connection.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:        &UserDirectory{DB: db},
		Appointments: &AppointmentStore{DB: db},
		Availability: &AvailabilityStore{DB: db},
		Records:      &RecordStore{DB: db},
		Notifier:     &Notifier{DB: db},
	}
}

// UserDirectory looks up users.
type UserDirectory struct {
	DB *gorm.DB
}

// FindByID returns the user or (nil, nil) when absent.
func (s *UserDirectory) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AppointmentStore persists appointments.
type AppointmentStore struct {
	DB *gorm.DB
}

func (s *AppointmentStore) Create(appt *models.Appointment) error {
	return s.DB.Create(appt).Error
}

func (s *AppointmentStore) FindByID(id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

// FindActiveAt returns the doctor's pending or confirmed appointments on the
// same calendar day as date with the given start time.
func (s *AppointmentStore) FindActiveAt(doctorID string, date time.Time, start models.TimeOfDay) ([]models.Appointment, error) {
	dayStart, dayEnd := dayBounds(date)
	var appointments []models.Appointment
	err := s.DB.
		Where("doctor_id = ? AND date >= ? AND date <= ? AND start_time = ? AND status IN ?",
			doctorID, dayStart, dayEnd, start, models.ActiveStatuses).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentStore) Save(appt *models.Appointment) error {
	return s.DB.Save(appt).Error
}

// dayBounds returns 00:00:00 and 23:59:59 of date's calendar day in local time.
func dayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	end := time.Date(year, month, day, 23, 59, 59, 0, date.Location())
	return start, end
}

// AvailabilityStore persists weekly availability windows.
type AvailabilityStore struct {
	DB *gorm.DB
}

// Upsert creates or overwrites the single row for (doctor, day). The unique
// index on (doctor_id, day) backs the one-row-per-day invariant.
func (s *AvailabilityStore) Upsert(row *models.Availability) error {
	return s.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_available", "updated_at"}),
		}).
		Create(row).Error
}

func (s *AvailabilityStore) FindByDoctor(doctorID string) ([]models.Availability, error) {
	var rows []models.Availability
	if err := s.DB.Where("doctor_id = ?", doctorID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AvailabilityStore) FindByDoctorDay(doctorID string, day models.Weekday) (*models.Availability, error) {
	var row models.Availability
	if err := s.DB.Where("doctor_id = ? AND day = ?", doctorID, day).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *AvailabilityStore) DeleteByDoctorDay(doctorID string, day models.Weekday) (bool, error) {
	result := s.DB.Where("doctor_id = ? AND day = ?", doctorID, day).Delete(&models.Availability{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RecordStore persists consultation records.
type RecordStore struct {
	DB *gorm.DB
}

func (s *RecordStore) Create(rec *models.PatientRecord) error {
	return s.DB.Create(rec).Error
}

// Notifier writes notification rows. Failures are logged and swallowed so
// delivery never affects the operation that emitted the notification.
type Notifier struct {
	DB *gorm.DB
}

func (s *Notifier) Notify(n models.Notification) {
	if err := s.DB.Create(&n).Error; err != nil {
		log.Printf("failed to store notification for user %s: %v", n.RecipientID, err)
	}
}
