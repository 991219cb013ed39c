package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Damatnic/astral-planner/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	lowConfidenceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderPlacement formats one placement as a schedule row.
func renderPlacement(p models.Placement) string {
	window := timeStyle.Render(fmt.Sprintf("%s – %s",
		p.Start.Format("Mon Jan 2 15:04"), p.End.Format("15:04")))

	title := p.Task.Title
	if p.Task.Priority == models.PriorityUrgent {
		title = urgentStyle.Render(title)
	}

	confidence := fmt.Sprintf("%.0f%%", p.Confidence*100)
	if p.Confidence < 0.5 {
		confidence = lowConfidenceStyle.Render(confidence + " (due date at risk)")
	} else {
		confidence = mutedStyle.Render(confidence)
	}

	return fmt.Sprintf("%s  %s  %s", window, title, confidence)
}

func renderSummary(s models.Summary) string {
	return mutedStyle.Render(fmt.Sprintf("%d tasks, %dm total, avg confidence %.0f%%",
		s.TotalTasks, s.TotalDurationMin, s.AverageConfidence*100))
}
