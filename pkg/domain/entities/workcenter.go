package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a weekday- and time-scoped interval of working capacity.
// StartTOD/EndTOD are times-of-day expressed as a duration since midnight;
// EndTOD <= StartTOD means the shift runs overnight into the next day.
type Shift struct {
	ID           string
	WorkCenter   string
	StartTOD     time.Duration
	EndTOD       time.Duration
	Weekdays     map[time.Weekday]bool // Monday == 1 per the spec's convention
	ValidFrom    *time.Time
	ValidTo      *time.Time
}

// Duration returns the shift's length, adding 24h when it runs overnight.
func (s Shift) Duration() time.Duration {
	d := s.EndTOD - s.StartTOD
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d
}

// AppliesOn reports whether the shift is active (weekday + validity window) on date d.
func (s Shift) AppliesOn(d time.Time) bool {
	if !s.Weekdays[d.Weekday()] {
		return false
	}
	if s.ValidFrom != nil && d.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidTo != nil && d.After(*s.ValidTo) {
		return false
	}
	return true
}

// ScheduledStop is an absolute downtime interval that clips shift capacity.
type ScheduledStop struct {
	ID         string
	WorkCenter string
	Start      time.Time
	End        time.Time
}

// CalendarDayType classifies a calendar date for capacity purposes.
type CalendarDayType string

const (
	DayWorking    CalendarDayType = "WORKING"
	DayNonWorking CalendarDayType = "NON_WORKING"
)

// CalendarDay records whether a UTC date contributes capacity.
type CalendarDay struct {
	Date time.Time
	Type CalendarDayType
}

// WorkCenter groups routing steps, shifts, and scheduled stops.
type WorkCenter struct {
	ID             string
	Code           string
	Name           string
	EfficiencyPct  decimal.Decimal // default 100
	CostPerHour    *decimal.Decimal
	Shifts         []Shift
	ScheduledStops []ScheduledStop
}
