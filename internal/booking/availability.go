package booking

import (
	"mindcare-app-server/internal/models"
)

// AvailabilitySlot is one day's window in a bulk schedule update.
type AvailabilitySlot struct {
	Day         models.Weekday   `json:"day" binding:"required"`
	StartTime   models.TimeOfDay `json:"startTime"`
	EndTime     models.TimeOfDay `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

// SetAvailability upserts the single availability row for (doctor, day) and
// returns the stored row. The interval itself is not validated; the caller is
// trusted to supply a sane window.
func (s *Service) SetAvailability(doctorID string, day models.Weekday, start, end models.TimeOfDay, available bool) (*models.Availability, error) {
	if !day.IsValid() {
		return nil, errf(KindInvalidRequest, "%q is not a valid weekday", day)
	}
	row := &models.Availability{
		DoctorID:    doctorID,
		Day:         day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
	if err := s.availability.Upsert(row); err != nil {
		return nil, err
	}
	return row, nil
}

// SetBulkAvailability applies SetAvailability for each slot in order. A
// failure stops the loop but earlier slots stay committed.
func (s *Service) SetBulkAvailability(doctorID string, slots []AvailabilitySlot) ([]models.Availability, error) {
	if len(slots) == 0 {
		return nil, errf(KindInvalidRequest, "schedule must be a non-empty array")
	}
	result := make([]models.Availability, 0, len(slots))
	for _, slot := range slots {
		row, err := s.SetAvailability(doctorID, slot.Day, slot.StartTime, slot.EndTime, slot.IsAvailable)
		if err != nil {
			return result, err
		}
		result = append(result, *row)
	}
	return result, nil
}

// GetAvailability returns all availability rows for the doctor.
func (s *Service) GetAvailability(doctorID string) ([]models.Availability, error) {
	return s.availability.FindByDoctor(doctorID)
}

// DeleteAvailability removes the row for (doctor, day).
func (s *Service) DeleteAvailability(doctorID string, day models.Weekday) error {
	deleted, err := s.availability.DeleteByDoctorDay(doctorID, day)
	if err != nil {
		return err
	}
	if !deleted {
		return errf(KindNotFound, "No availability found for %s", day)
	}
	return nil
}
