package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Damatnic/astral-planner/internal/models"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Duration int    `short:"d" help:"Estimated duration in minutes (default 60)."`
	Priority string `short:"p" help:"Priority (urgent|high|medium|low)." default:"medium"`
	Due      string `short:"D" help:"Due date (RFC3339 or YYYY-MM-DD)."`
	Type     string `short:"t" help:"Free-form task type tag."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	priority, err := parsePriority(c.Priority)
	if err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	loc, err := prefs.WithDefaults().Location()
	if err != nil {
		loc = time.UTC
	}

	due, err := parseDue(c.Due, loc)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       c.Title,
		DurationMin: c.Duration,
		Priority:    priority,
		DueDate:     due,
		Type:        c.Type,
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	return nil
}
