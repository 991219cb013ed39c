package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Damatnic/astral-planner/internal/models"
)

// monday8am is Monday 2026-01-05 08:00 UTC.
var monday8am = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

func defaultPrefs() models.Preferences {
	return models.Preferences{}.WithDefaults()
}

func TestPlan_PriorityOrderingExample(t *testing.T) {
	// now = Monday 08:00, hours 09:00-17:00, Mon-Fri, break 15.
	// B is urgent so it jumps ahead of A despite input order.
	tasks := []models.Task{
		{Title: "A", Priority: models.PriorityLow, DurationMin: 60},
		{Title: "B", Priority: models.PriorityUrgent, DurationMin: 30},
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}

	if placements[0].Task.Title != "B" {
		t.Errorf("expected urgent task first, got %q", placements[0].Task.Title)
	}
	wantBStart := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	wantBEnd := time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC)
	if !placements[0].Start.Equal(wantBStart) || !placements[0].End.Equal(wantBEnd) {
		t.Errorf("B scheduled %v-%v, want %v-%v", placements[0].Start, placements[0].End, wantBStart, wantBEnd)
	}
	if placements[0].Confidence != BaselineConfidence {
		t.Errorf("B confidence = %v, want %v", placements[0].Confidence, BaselineConfidence)
	}

	wantAStart := time.Date(2026, time.January, 5, 9, 45, 0, 0, time.UTC)
	wantAEnd := time.Date(2026, time.January, 5, 10, 45, 0, 0, time.UTC)
	if !placements[1].Start.Equal(wantAStart) || !placements[1].End.Equal(wantAEnd) {
		t.Errorf("A scheduled %v-%v, want %v-%v", placements[1].Start, placements[1].End, wantAStart, wantAEnd)
	}
	if placements[1].Confidence != BaselineConfidence {
		t.Errorf("A confidence = %v, want %v", placements[1].Confidence, BaselineConfidence)
	}
}

func TestPlan_EmptyTaskList(t *testing.T) {
	placements, err := New().Plan(nil, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(placements) != 0 {
		t.Errorf("expected empty placements, got %d", len(placements))
	}
}

func TestPlan_Completeness(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 25; i++ {
		tasks = append(tasks, models.Task{Title: "task", DurationMin: 45})
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(placements) != len(tasks) {
		t.Errorf("expected %d placements, got %d: no task may be dropped", len(tasks), len(placements))
	}
}

func TestPlan_NoOverlapAndBreakRespected(t *testing.T) {
	tasks := []models.Task{
		{Title: "one", DurationMin: 90},
		{Title: "two", DurationMin: 30},
		{Title: "three", DurationMin: 120},
		{Title: "four"},
	}
	prefs := defaultPrefs()

	placements, err := New().Plan(tasks, prefs, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	breakDur := time.Duration(prefs.BreakMin) * time.Minute
	for i := 1; i < len(placements); i++ {
		gap := placements[i].Start.Sub(placements[i-1].End)
		if gap < breakDur {
			t.Errorf("placement %d starts %v after previous end, want >= %v", i, gap, breakDur)
		}
	}
}

func TestPlan_WithinWorkingHours(t *testing.T) {
	// Enough tasks to spill over several days, including a weekend.
	var tasks []models.Task
	for i := 0; i < 30; i++ {
		tasks = append(tasks, models.Task{Title: "block", DurationMin: 120})
	}
	friday := time.Date(2026, time.January, 9, 14, 0, 0, 0, time.UTC)

	placements, err := New().Plan(tasks, models.Preferences{}, friday)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	for i, p := range placements {
		startMin := p.Start.Hour()*60 + p.Start.Minute()
		endMin := p.End.Hour()*60 + p.End.Minute()
		if startMin < 9*60 || startMin >= 17*60 {
			t.Errorf("placement %d starts outside working hours: %v", i, p.Start)
		}
		if endMin > 17*60 {
			t.Errorf("placement %d ends after working hours: %v", i, p.End)
		}
		switch p.Start.Weekday() {
		case time.Saturday, time.Sunday:
			t.Errorf("placement %d lands on a weekend: %v", i, p.Start)
		}
	}
}

func TestPlan_DueDateTieBreak(t *testing.T) {
	later := time.Date(2026, time.January, 9, 17, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, time.January, 6, 17, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{Title: "no due", Priority: models.PriorityHigh},
		{Title: "due later", Priority: models.PriorityHigh, DueDate: &later},
		{Title: "due sooner", Priority: models.PriorityHigh, DueDate: &sooner},
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	got := []string{placements[0].Task.Title, placements[1].Task.Title, placements[2].Task.Title}
	want := []string{"due sooner", "due later", "no due"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestPlan_StableOrderForEqualTasks(t *testing.T) {
	tasks := []models.Task{
		{Title: "first", Priority: models.PriorityMedium},
		{Title: "second", Priority: models.PriorityMedium},
		{Title: "third", Priority: models.PriorityMedium},
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if placements[i].Task.Title != want {
			t.Errorf("placement %d = %q, want %q (input order must be kept)", i, placements[i].Task.Title, want)
		}
	}
}

func TestPlan_PastDueDateLowersConfidence(t *testing.T) {
	yesterday := monday8am.AddDate(0, 0, -1)
	tasks := []models.Task{
		{Title: "overdue", Priority: models.PriorityUrgent, DueDate: &yesterday},
		{Title: "fresh", Priority: models.PriorityLow},
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if placements[0].Task.Title != "overdue" {
		t.Fatalf("expected overdue task first, got %q", placements[0].Task.Title)
	}
	if placements[0].Confidence != MissedDueConfidence {
		t.Errorf("overdue confidence = %v, want %v", placements[0].Confidence, MissedDueConfidence)
	}
	if placements[1].Confidence != BaselineConfidence {
		t.Errorf("fresh confidence = %v, want %v (no due date is never penalized)", placements[1].Confidence, BaselineConfidence)
	}
}

func TestPlan_OversizedTaskRollsWholeToNextDay(t *testing.T) {
	// A 10-hour task cannot fit an 8-hour window. It must move wholesale to
	// the next work day's opening, never split.
	tasks := []models.Task{{Title: "marathon", DurationMin: 600}}
	monday9am := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	placements, err := New().Plan(tasks, models.Preferences{}, monday9am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}

	wantStart := time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC)
	if !placements[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want next work day opening %v", placements[0].Start, wantStart)
	}
	if got := placements[0].End.Sub(placements[0].Start); got != 600*time.Minute {
		t.Errorf("duration = %v, want full 600m in one block", got)
	}
}

func TestPlan_FridayEveningRollsToMonday(t *testing.T) {
	fridayNight := time.Date(2026, time.January, 9, 20, 30, 0, 0, time.UTC)
	tasks := []models.Task{{Title: "late", DurationMin: 60}}

	placements, err := New().Plan(tasks, models.Preferences{}, fridayNight)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantStart := time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC) // Monday
	if !placements[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", placements[0].Start, wantStart)
	}
}

func TestPlan_CursorRoundsUpToQuarterHour(t *testing.T) {
	now := time.Date(2026, time.January, 5, 10, 7, 42, 0, time.UTC)
	tasks := []models.Task{{Title: "t"}}

	placements, err := New().Plan(tasks, models.Preferences{}, now)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantStart := time.Date(2026, time.January, 5, 10, 15, 0, 0, time.UTC)
	if !placements[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", placements[0].Start, wantStart)
	}
}

func TestPlan_ZeroAndNegativeDurationsDefault(t *testing.T) {
	tasks := []models.Task{
		{Title: "zero", DurationMin: 0},
		{Title: "negative", DurationMin: -30},
	}

	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	for _, p := range placements {
		if got := p.End.Sub(p.Start); got != 60*time.Minute {
			t.Errorf("task %q duration = %v, want default 60m", p.Task.Title, got)
		}
	}
}

func TestPlan_CustomWorkDays(t *testing.T) {
	prefs := models.Preferences{
		WorkDays: []time.Weekday{time.Saturday, time.Sunday},
	}
	tasks := []models.Task{{Title: "weekend chore"}}

	placements, err := New().Plan(tasks, prefs, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantStart := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC) // Saturday
	if !placements[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", placements[0].Start, wantStart)
	}
}

func TestPlan_TimezoneInterpretation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	// 13:30 UTC on a Monday is 08:30 in New York, so the first task waits for
	// the 09:00 local opening.
	now := time.Date(2026, time.January, 5, 13, 30, 0, 0, time.UTC)
	prefs := models.Preferences{Timezone: "America/New_York"}
	tasks := []models.Task{{Title: "local"}}

	placements, err := New().Plan(tasks, prefs, now)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantStart := time.Date(2026, time.January, 5, 9, 0, 0, 0, loc)
	if !placements[0].Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", placements[0].Start, wantStart)
	}
}

// TestPlan_BreakMayOutliveClosingTime pins a deliberate quirk: the break after
// a task is appended without re-checking working hours, so a cursor can sit
// past close. Only the next task's boundary check rolls it forward.
func TestPlan_BreakMayOutliveClosingTime(t *testing.T) {
	// First task runs 09:00-16:50, cursor lands at 17:05, past the 17:00
	// close. The second task must then open the next work day.
	tasks := []models.Task{
		{Title: "long", Priority: models.PriorityHigh, DurationMin: 470},
		{Title: "after", Priority: models.PriorityLow, DurationMin: 30},
	}
	monday9am := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	placements, err := New().Plan(tasks, models.Preferences{}, monday9am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	wantSecond := time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC)
	if !placements[1].Start.Equal(wantSecond) {
		t.Errorf("second start = %v, want %v", placements[1].Start, wantSecond)
	}
}

func TestPlan_Determinism(t *testing.T) {
	due := time.Date(2026, time.January, 7, 12, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{Title: "a", Priority: models.PriorityLow, DurationMin: 45},
		{Title: "b", Priority: models.PriorityUrgent, DueDate: &due},
		{Title: "c", Priority: models.PriorityUrgent},
	}

	first, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	second, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output:\n%v\n%v", first, second)
	}
}

func TestPlan_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		tasks []models.Task
		prefs models.Preferences
	}{
		{
			name:  "empty work days",
			tasks: []models.Task{{Title: "t"}},
			prefs: models.Preferences{WorkDays: []time.Weekday{}, Timezone: "UTC", WorkStart: "09:00", WorkEnd: "17:00", BreakMin: 15},
		},
		{
			name:  "bad timezone",
			tasks: []models.Task{{Title: "t"}},
			prefs: models.Preferences{Timezone: "Not/AZone"},
		},
		{
			name:  "bad work start",
			tasks: []models.Task{{Title: "t"}},
			prefs: models.Preferences{WorkStart: "9am"},
		},
		{
			name:  "start after end",
			tasks: []models.Task{{Title: "t"}},
			prefs: models.Preferences{WorkStart: "18:00", WorkEnd: "09:00"},
		},
		{
			name:  "empty title",
			tasks: []models.Task{{Title: ""}},
		},
		{
			name:  "unknown priority",
			tasks: []models.Task{{Title: "t", Priority: "critical"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Plan(tc.tasks, tc.prefs, monday8am)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v is not ErrInvalidInput", err)
			}
		})
	}
}

func TestPlan_InvalidInputIsAllOrNothing(t *testing.T) {
	tasks := []models.Task{
		{Title: "fine"},
		{Title: ""},
	}
	placements, err := New().Plan(tasks, models.Preferences{}, monday8am)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if placements != nil {
		t.Errorf("expected no partial schedule, got %d placements", len(placements))
	}
}

func TestOrderTasks_EmptyWorkDaysNote(t *testing.T) {
	// Guard against regressions in the validated precondition: the day-roll
	// loop relies on Validate rejecting an empty set before any walk begins.
	prefs := models.Preferences{
		WorkStart: "09:00", WorkEnd: "17:00", BreakMin: 15, Timezone: "UTC",
		WorkDays: nil,
	}
	if err := prefs.Validate(); err == nil {
		t.Error("expected Validate to reject empty work days")
	}
}
