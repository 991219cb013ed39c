package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Damatnic/astral-planner/internal/config"
	"github.com/Damatnic/astral-planner/internal/models"
)

type PlanCmd struct {
	At    string `help:"Reference instant to schedule from (RFC3339, default now)."`
	Prefs string `help:"YAML preferences file overriding stored preferences." type:"path"`
	Yes   bool   `short:"y" help:"Save without confirmation."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	if c.At != "" {
		var err error
		now, err = time.Parse(time.RFC3339, c.At)
		if err != nil {
			return fmt.Errorf("invalid --at value, use RFC3339: %w", err)
		}
	}

	var prefs models.Preferences
	if c.Prefs != "" {
		var err error
		prefs, err = config.LoadPreferences(c.Prefs)
		if err != nil {
			return err
		}
	} else {
		var err error
		prefs, err = ctx.Store.GetPreferences()
		if err != nil {
			return fmt.Errorf("failed to get preferences: %w", err)
		}
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	placements, err := ctx.Planner.Plan(tasks, prefs, now)
	if err != nil {
		return err
	}

	if len(placements) == 0 {
		fmt.Println("No tasks to schedule")
		return nil
	}

	loc, locErr := prefs.WithDefaults().Location()
	if locErr != nil {
		loc = time.UTC
	}
	date := placements[0].Start.In(loc).Format("2006-01-02")

	fmt.Println(headerStyle.Render(fmt.Sprintf("Proposed schedule from %s:", date)))
	fmt.Println()
	for _, p := range placements {
		fmt.Println("  " + renderPlacement(p))
	}
	summary := models.Summarize(placements)
	fmt.Println()
	fmt.Println("  " + renderSummary(summary))

	if !c.Yes {
		fmt.Print("\nSave this schedule? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Schedule discarded. You can modify tasks and regenerate.")
			return nil
		}
	}

	schedule := models.Schedule{
		Date:        date,
		GeneratedAt: now,
		Placements:  placements,
		Summary:     summary,
	}
	if err := ctx.Store.SaveSchedule(schedule); err != nil {
		return err
	}

	fmt.Println("Schedule saved!")
	return nil
}
