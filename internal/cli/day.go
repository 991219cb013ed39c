package cli

import (
	"fmt"
	"time"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date := c.Date
	if date == "today" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}

	schedule, err := ctx.Store.GetSchedule(date)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Schedule for %s:", date)))
	fmt.Println()
	for _, p := range schedule.Placements {
		fmt.Println("  " + renderPlacement(p))
	}
	fmt.Println()
	fmt.Println("  " + renderSummary(schedule.Summary))

	return nil
}
