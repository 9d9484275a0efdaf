package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time stored as minutes since midnight.
// It marshals as a zero-padded 24-hour "HH:MM" string and is comparable
// with plain integer operators.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON implements json.Marshaler.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so the column is stored as an integer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case nil:
		*t = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// Weekday is one of the seven weekday names.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// WeekdayOf resolves a calendar date to its weekday name using local time rules.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

// IsValid reports whether w is one of the seven weekday names.
func (w Weekday) IsValid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}
