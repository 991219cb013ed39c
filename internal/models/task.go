package models

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort weight of a priority; higher ranks schedule first.
// An empty priority ranks as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium, "":
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority levels or unset.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, "":
		return true
	default:
		return false
	}
}

// DefaultDurationMin is applied when a task carries no usable estimate.
const DefaultDurationMin = 60

// Task is one unit of work to be scheduled. Tasks are read-only inputs to the
// planner; callers own their construction and persistence.
type Task struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	DurationMin int        `json:"estimatedDuration,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Type        string     `json:"type,omitempty"`
	DeletedAt   *string    `json:"deletedAt,omitempty"` // RFC3339 timestamp
}

// EffectiveDurationMin returns the task's estimate, or the 60-minute default
// when the estimate is missing or non-positive.
func (t Task) EffectiveDurationMin() int {
	if t.DurationMin <= 0 {
		return DefaultDurationMin
	}
	return t.DurationMin
}

// Validate checks the shape of a task before planning.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task %q has unknown priority %q", t.Title, t.Priority)
	}
	return nil
}
