package cli

import "fmt"

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	fmt.Println("Preferences:")
	fmt.Printf("  Working hours: %s - %s\n", prefs.WorkStart, prefs.WorkEnd)
	fmt.Printf("  Break:         %dm\n", prefs.BreakMin)
	fmt.Printf("  Focus session: %dm (informational)\n", prefs.FocusSessionMin)
	fmt.Printf("  Timezone:      %s\n", prefs.Timezone)
	fmt.Printf("  Work days:     %s\n", formatWeekdays(prefs.WorkDays))

	return nil
}

type PrefsSetCmd struct {
	WorkStart string `help:"Working hours start (HH:MM)."`
	WorkEnd   string `help:"Working hours end (HH:MM)."`
	Break     int    `help:"Break duration in minutes."`
	Focus     int    `help:"Focus session length in minutes."`
	Timezone  string `help:"IANA timezone name."`
	WorkDays  string `help:"Comma-separated work days (names or ISO numbers, Mon=1)."`
}

func (c *PrefsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	if c.WorkStart != "" {
		prefs.WorkStart = c.WorkStart
	}
	if c.WorkEnd != "" {
		prefs.WorkEnd = c.WorkEnd
	}
	if c.Break > 0 {
		prefs.BreakMin = c.Break
	}
	if c.Focus > 0 {
		prefs.FocusSessionMin = c.Focus
	}
	if c.Timezone != "" {
		prefs.Timezone = c.Timezone
	}
	if c.WorkDays != "" {
		weekdays, err := parseWeekdays(c.WorkDays)
		if err != nil {
			return err
		}
		prefs.WorkDays = weekdays
	}

	prefs = prefs.WithDefaults()
	if err := prefs.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return err
	}

	fmt.Println("Preferences updated")
	return (&PrefsShowCmd{}).Run(ctx)
}
