// Package config loads scheduling preferences from YAML files so callers can
// override stored preferences per invocation.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Damatnic/astral-planner/internal/models"
)

// preferencesFile is the on-disk YAML shape. Weekdays use ISO numbering
// (Monday=1 .. Sunday=7) to match the API contract.
type preferencesFile struct {
	WorkingHours struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"workingHours"`
	BreakDuration      int    `yaml:"breakDuration"`
	FocusSessionLength int    `yaml:"focusSessionLength"`
	Timezone           string `yaml:"timezone"`
	WorkDays           []int  `yaml:"workDays"`
}

// ParsePreferences decodes a YAML payload into preferences. Missing fields
// stay zero so the caller's WithDefaults pass fills them.
func ParsePreferences(data []byte) (models.Preferences, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Preferences{}, fmt.Errorf("config: preferences payload is empty")
	}

	var file preferencesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.Preferences{}, fmt.Errorf("config: decode preferences: %w", err)
	}

	prefs := models.Preferences{
		WorkStart:       file.WorkingHours.Start,
		WorkEnd:         file.WorkingHours.End,
		BreakMin:        file.BreakDuration,
		FocusSessionMin: file.FocusSessionLength,
		Timezone:        file.Timezone,
	}
	if file.WorkDays != nil {
		prefs.WorkDays = make([]time.Weekday, 0, len(file.WorkDays))
		for _, n := range file.WorkDays {
			wd, err := models.ISOWeekday(n)
			if err != nil {
				return models.Preferences{}, fmt.Errorf("config: %w", err)
			}
			prefs.WorkDays = append(prefs.WorkDays, wd)
		}
	}

	return prefs, nil
}

// LoadPreferences reads a YAML preferences file from disk.
func LoadPreferences(path string) (models.Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	prefs, err := ParsePreferences(data)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return prefs, nil
}
