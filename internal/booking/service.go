package booking

import (
	"sync"
	"time"

	"mindcare-app-server/internal/models"
)

// UserDirectory resolves users for booking eligibility checks.
// Finders return (nil, nil) when no row exists.
type UserDirectory interface {
	FindByID(id string) (*models.User, error)
}

// AppointmentStore persists appointments.
type AppointmentStore interface {
	Create(appt *models.Appointment) error
	FindByID(id string) (*models.Appointment, error)
	// FindActiveAt returns appointments for the doctor on the same calendar
	// day as date, starting at start, whose status is pending or confirmed.
	FindActiveAt(doctorID string, date time.Time, start models.TimeOfDay) ([]models.Appointment, error)
	Save(appt *models.Appointment) error
}

// AvailabilityStore persists per-doctor weekly availability windows.
type AvailabilityStore interface {
	Upsert(row *models.Availability) error
	FindByDoctor(doctorID string) ([]models.Availability, error)
	FindByDoctorDay(doctorID string, day models.Weekday) (*models.Availability, error)
	// DeleteByDoctorDay reports whether a row was actually removed.
	DeleteByDoctorDay(doctorID string, day models.Weekday) (bool, error)
}

// RecordStore persists consultation records.
type RecordStore interface {
	Create(rec *models.PatientRecord) error
}

// Notifier delivers notifications. Delivery is fire-and-forget: the
// implementation must swallow its own failures.
type Notifier interface {
	Notify(n models.Notification)
}

// Service holds the availability ledger, the booking reconciler and the
// appointment lifecycle operations.
type Service struct {
	users        UserDirectory
	appointments AppointmentStore
	availability AvailabilityStore
	records      RecordStore
	notifier     Notifier

	// doctorLocks serializes the check-then-act booking path per doctor so
	// two concurrent requests cannot both pass the conflict check.
	mu          sync.Mutex
	doctorLocks map[string]*sync.Mutex
}

// NewService creates a booking Service.
func NewService(users UserDirectory, appointments AppointmentStore, availability AvailabilityStore, records RecordStore, notifier Notifier) *Service {
	return &Service{
		users:        users,
		appointments: appointments,
		availability: availability,
		records:      records,
		notifier:     notifier,
		doctorLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockDoctor(doctorID string) *sync.Mutex {
	s.mu.Lock()
	l, ok := s.doctorLocks[doctorID]
	if !ok {
		l = &sync.Mutex{}
		s.doctorLocks[doctorID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l
}
