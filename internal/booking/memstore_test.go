package booking

import (
	"fmt"
	"sync"
	"time"

	"mindcare-app-server/internal/models"
)

// In-memory stores backing the booking tests. All of them are safe for
// concurrent use so the serialization tests exercise only the service's own
// locking.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (m *memUsers) add(u models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = &u
	return &u
}

func (m *memUsers) FindByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type memAppointments struct {
	mu    sync.Mutex
	seq   int
	items map[string]*models.Appointment
}

func newMemAppointments() *memAppointments {
	return &memAppointments{items: make(map[string]*models.Appointment)}
}

func (m *memAppointments) Create(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	appt.ID = fmt.Sprintf("appt-%d", m.seq)
	cp := *appt
	m.items[appt.ID] = &cp
	return nil
}

func (m *memAppointments) FindByID(id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *appt
	return &cp, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *memAppointments) FindActiveAt(doctorID string, date time.Time, start models.TimeOfDay) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, appt := range m.items {
		if appt.DoctorID == doctorID && sameDay(appt.Date, date) &&
			appt.StartTime == start && appt.Status.IsActive() {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (m *memAppointments) Save(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *appt
	m.items[appt.ID] = &cp
	return nil
}

func (m *memAppointments) all() []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Appointment, 0, len(m.items))
	for _, appt := range m.items {
		out = append(out, *appt)
	}
	return out
}

type memAvailability struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*models.Availability // keyed by doctorID+day
}

func newMemAvailability() *memAvailability {
	return &memAvailability{rows: make(map[string]*models.Availability)}
}

func availKey(doctorID string, day models.Weekday) string {
	return doctorID + "/" + string(day)
}

func (m *memAvailability) Upsert(row *models.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := availKey(row.DoctorID, row.Day)
	if existing, ok := m.rows[key]; ok {
		row.ID = existing.ID
	} else {
		m.seq++
		row.ID = fmt.Sprintf("avail-%d", m.seq)
	}
	cp := *row
	m.rows[key] = &cp
	return nil
}

func (m *memAvailability) FindByDoctor(doctorID string) ([]models.Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Availability
	for _, row := range m.rows {
		if row.DoctorID == doctorID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memAvailability) FindByDoctorDay(doctorID string, day models.Weekday) (*models.Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[availKey(doctorID, day)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *memAvailability) DeleteByDoctorDay(doctorID string, day models.Weekday) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := availKey(doctorID, day)
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}

type memRecords struct {
	mu    sync.Mutex
	items []models.PatientRecord
}

func (m *memRecords) Create(rec *models.PatientRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = fmt.Sprintf("record-%d", len(m.items)+1)
	m.items = append(m.items, *rec)
	return nil
}

func (m *memRecords) all() []models.PatientRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PatientRecord(nil), m.items...)
}

type memNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (m *memNotifier) Notify(n models.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
}

func (m *memNotifier) all() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Notification(nil), m.sent...)
}

// testEnv bundles a service with its fakes and a seeded doctor and patient.
type testEnv struct {
	svc          *Service
	users        *memUsers
	appointments *memAppointments
	availability *memAvailability
	records      *memRecords
	notifier     *memNotifier

	doctor  *models.User
	patient *models.User
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:        newMemUsers(),
		appointments: newMemAppointments(),
		availability: newMemAvailability(),
		records:      &memRecords{},
		notifier:     &memNotifier{},
	}
	env.svc = NewService(env.users, env.appointments, env.availability, env.records, env.notifier)
	env.doctor = env.users.add(models.User{
		BaseModel: models.BaseModel{ID: "doctor-1"},
		Name:      "Dr. Hart",
		Role:      models.RoleDoctor,
		Approved:  true,
	})
	env.patient = env.users.add(models.User{
		BaseModel: models.BaseModel{ID: "patient-1"},
		Name:      "Ada",
		Role:      models.RoleUser,
	})
	return env
}
