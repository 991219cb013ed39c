package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scheduling defaults applied by Preferences.WithDefaults.
const (
	DefaultWorkStart       = "09:00"
	DefaultWorkEnd         = "17:00"
	DefaultBreakMin        = 15
	DefaultFocusSessionMin = 90
	DefaultTimezone        = "UTC"
)

// DefaultWorkDays is Monday through Friday.
func DefaultWorkDays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

// Preferences holds the working-time constraints for one planning call.
// Callers construct a partial value and call WithDefaults once; the planner
// receives the result immutably and never consults ambient state.
type Preferences struct {
	WorkStart string `json:"workStart"` // HH:MM
	WorkEnd   string `json:"workEnd"`   // HH:MM
	BreakMin  int    `json:"breakDuration"`
	// FocusSessionMin is accepted and carried but not enforced; long tasks
	// are never split into focus sessions.
	FocusSessionMin int            `json:"focusSessionLength,omitempty"`
	Timezone        string         `json:"timezone"` // IANA name, e.g. "UTC", "Europe/London"
	WorkDays        []time.Weekday `json:"workDays"`
}

// WithDefaults returns a copy with every unset field replaced by its default.
func (p Preferences) WithDefaults() Preferences {
	if p.WorkStart == "" {
		p.WorkStart = DefaultWorkStart
	}
	if p.WorkEnd == "" {
		p.WorkEnd = DefaultWorkEnd
	}
	if p.BreakMin <= 0 {
		p.BreakMin = DefaultBreakMin
	}
	if p.FocusSessionMin <= 0 {
		p.FocusSessionMin = DefaultFocusSessionMin
	}
	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}
	// A nil set means unspecified and takes the default. An explicitly empty
	// set is left alone so Validate can reject it; defaulting it away would
	// silently mask input that would otherwise hang the day-roll loop.
	if p.WorkDays == nil {
		p.WorkDays = DefaultWorkDays()
	}
	return p
}

// Validate checks the shape of fully-defaulted preferences. An empty work-days
// set is rejected here so the planner's day-roll loop is guaranteed to
// terminate.
func (p Preferences) Validate() error {
	startMin, err := ParseClock(p.WorkStart)
	if err != nil {
		return fmt.Errorf("invalid work start time: %w", err)
	}
	endMin, err := ParseClock(p.WorkEnd)
	if err != nil {
		return fmt.Errorf("invalid work end time: %w", err)
	}
	if startMin >= endMin {
		return fmt.Errorf("work start %s must be before work end %s", p.WorkStart, p.WorkEnd)
	}
	if len(p.WorkDays) == 0 {
		return fmt.Errorf("work days must not be empty")
	}
	for _, wd := range p.WorkDays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid work day: %d", wd)
		}
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
	}
	return nil
}

// Location resolves the preferences timezone. Validate must have passed.
func (p Preferences) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

// ParseClock converts an HH:MM string to minutes from midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", clock, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %q", clock)
	}
	return hour*60 + minute, nil
}

// FormatClock converts minutes from midnight to an HH:MM string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ISOWeekday converts an ISO weekday number (Monday=1 .. Sunday=7) to a
// time.Weekday.
func ISOWeekday(n int) (time.Weekday, error) {
	if n < 1 || n > 7 {
		return 0, fmt.Errorf("invalid ISO weekday: %d", n)
	}
	if n == 7 {
		return time.Sunday, nil
	}
	return time.Weekday(n), nil
}

// ToISOWeekday converts a time.Weekday to its ISO number (Monday=1 .. Sunday=7).
func ToISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
