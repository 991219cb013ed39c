package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Damatnic/astral-planner/internal/models"
	"github.com/Damatnic/astral-planner/internal/planner"
	"github.com/Damatnic/astral-planner/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Planner *planner.Planner
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as an ISO number (Monday=1 .. Sunday=7)
		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		wd, err := models.ISOWeekday(num)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, wd)
	}

	return weekdays, nil
}

func formatWeekdays(weekdays []time.Weekday) string {
	var days []string
	for _, wd := range weekdays {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}

func parsePriority(s string) (models.Priority, error) {
	p := models.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want urgent|high|medium|low)", s)
	}
	return p, nil
}

// parseDue accepts an absolute timestamp or a plain date, which is read as
// end of business that day in the given location.
func parseDue(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		due := time.Date(d.Year(), d.Month(), d.Day(), 17, 0, 0, 0, loc)
		return &due, nil
	}
	return nil, fmt.Errorf("invalid due date %q (want RFC3339 or YYYY-MM-DD)", s)
}
