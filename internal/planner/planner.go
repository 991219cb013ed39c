package planner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Damatnic/astral-planner/internal/models"
)

// ErrInvalidInput marks client-shaped input errors. Boundaries classify
// failures with errors.Is(err, ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid input")

// Confidence levels reported per placement.
const (
	BaselineConfidence  = 0.8
	MissedDueConfidence = 0.4
)

type Planner struct{}

func New() *Planner {
	return &Planner{}
}

// Plan produces one conflict-free placement per task, ordered by priority and
// due date, confined to the working hours and work days in prefs. The
// reference instant now is caller-supplied so results are deterministic. The
// planner holds no state across calls and performs no I/O.
func (p *Planner) Plan(tasks []models.Task, prefs models.Preferences, now time.Time) ([]models.Placement, error) {
	prefs = prefs.WithDefaults()
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	placements := make([]models.Placement, 0, len(tasks))
	if len(tasks) == 0 {
		return placements, nil
	}

	loc, err := prefs.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	startMin, _ := models.ParseClock(prefs.WorkStart)
	endMin, _ := models.ParseClock(prefs.WorkEnd)

	cal := workCalendar{
		startMin: startMin,
		endMin:   endMin,
		workDays: weekdaySet(prefs.WorkDays),
	}

	cursor := cal.align(roundUpToQuarterHour(now.In(loc)))

	for _, task := range orderTasks(tasks) {
		duration := time.Duration(task.EffectiveDurationMin()) * time.Minute

		// A task that would run past close is moved wholesale to the next
		// work day's opening; it is never split across the boundary.
		if cal.minuteOfDay(cursor)+task.EffectiveDurationMin() >= cal.endMin {
			cursor = cal.nextWorkDayStart(cursor)
		}

		confidence := BaselineConfidence
		if task.DueDate != nil && cursor.After(*task.DueDate) {
			confidence = MissedDueConfidence
		}

		end := cursor.Add(duration)
		placements = append(placements, models.Placement{
			Task:       task,
			Start:      cursor,
			End:        end,
			Confidence: confidence,
		})

		// The break is appended blindly; whether it spills past close is only
		// detected by the next task's boundary check.
		cursor = end.Add(time.Duration(prefs.BreakMin) * time.Minute)
	}

	return placements, nil
}

type workCalendar struct {
	startMin int
	endMin   int
	workDays map[time.Weekday]bool
}

func weekdaySet(days []time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func (c workCalendar) minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func (c workCalendar) isWorkDay(t time.Time) bool {
	return c.workDays[t.Weekday()]
}

// dayStart returns t's calendar day at the working-hours start.
func (c workCalendar) dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, c.startMin/60, c.startMin%60, 0, 0, t.Location())
}

// nextWorkDayStart walks forward one day at a time until a permitted work day
// is reached. Termination is guaranteed by the validated non-empty work-days
// set.
func (c workCalendar) nextWorkDayStart(t time.Time) time.Time {
	for {
		t = c.dayStart(t.AddDate(0, 0, 1))
		if c.isWorkDay(t) {
			return t
		}
	}
}

// align moves a cursor into the working window: same-day opening when the
// cursor lands before hours on a permitted day, otherwise the next permitted
// day's opening.
func (c workCalendar) align(t time.Time) time.Time {
	if !c.isWorkDay(t) || c.minuteOfDay(t) >= c.endMin {
		return c.nextWorkDayStart(t)
	}
	if c.minuteOfDay(t) < c.startMin {
		return c.dayStart(t)
	}
	return t
}

// roundUpToQuarterHour rounds minutes up to the next multiple of 15 and zeroes
// seconds and sub-seconds.
func roundUpToQuarterHour(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute := t.Hour(), t.Minute()
	if rem := minute % 15; rem != 0 {
		minute += 15 - rem
	}
	return time.Date(year, month, day, hour, minute, 0, 0, t.Location())
}

// orderTasks returns a sorted copy: priority rank descending, then due-date
// presence, then earlier due date, then original input order. The index
// tie-break makes the comparator a total order independent of sort stability.
func orderTasks(tasks []models.Task) []models.Task {
	type indexed struct {
		task  models.Task
		index int
	}
	ordered := make([]indexed, len(tasks))
	for i, t := range tasks {
		ordered[i] = indexed{task: t, index: i}
	}

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if ra, rb := a.task.Priority.Rank(), b.task.Priority.Rank(); ra != rb {
			return ra > rb
		}
		aDue, bDue := a.task.DueDate, b.task.DueDate
		if (aDue != nil) != (bDue != nil) {
			return aDue != nil
		}
		if aDue != nil && bDue != nil && !aDue.Equal(*bDue) {
			return aDue.Before(*bDue)
		}
		return a.index < b.index
	})

	result := make([]models.Task, len(ordered))
	for i, o := range ordered {
		result[i] = o.task
	}
	return result
}
