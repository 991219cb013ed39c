package models

import "time"

// Placement is the computed time slot assigned to one task by the planner.
type Placement struct {
	Task       Task      `json:"task"`
	Start      time.Time `json:"scheduledStart"`
	End        time.Time `json:"scheduledEnd"`
	Confidence float64   `json:"confidence"`
}

// Summary aggregates one planning run for display and API responses.
type Summary struct {
	TotalTasks        int     `json:"totalTasks"`
	TotalDurationMin  int     `json:"totalDuration"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// Schedule is a persisted planning result for one day.
type Schedule struct {
	Date        string      `json:"date"` // YYYY-MM-DD of GeneratedAt in the planning timezone
	GeneratedAt time.Time   `json:"generatedAt"`
	Placements  []Placement `json:"placements"`
	Summary     Summary     `json:"summary"`
	DeletedAt   *string     `json:"deletedAt,omitempty"` // RFC3339 timestamp
}

// Summarize computes summary metadata over a set of placements. Durations use
// the same 60-minute default the planner applies.
func Summarize(placements []Placement) Summary {
	s := Summary{TotalTasks: len(placements)}
	if len(placements) == 0 {
		return s
	}
	var confidence float64
	for _, p := range placements {
		s.TotalDurationMin += p.Task.EffectiveDurationMin()
		confidence += p.Confidence
	}
	s.AverageConfidence = confidence / float64(len(placements))
	return s
}
