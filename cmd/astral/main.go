package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Damatnic/astral-planner/internal/cli"
	"github.com/Damatnic/astral-planner/internal/logger"
	"github.com/Damatnic/astral-planner/internal/planner"
	"github.com/Damatnic/astral-planner/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/astral/astral.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize astral storage."`
	Plan  cli.PlanCmd  `cmd:"" help:"Generate a schedule from pending tasks."`
	Day   cli.DayCmd   `cmd:"" help:"Show a saved schedule."`
	Serve cli.ServeCmd `cmd:"" help:"Run the schedule HTTP API."`
	Task  struct {
		Add     cli.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    cli.TaskListCmd    `cmd:"" help:"List all tasks."`
		Delete  cli.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore cli.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Manage tasks."`
	Prefs struct {
		Show cli.PrefsShowCmd `cmd:"" help:"Show scheduling preferences." default:"1"`
		Set  cli.PrefsSetCmd  `cmd:"" help:"Update scheduling preferences."`
	} `cmd:"" help:"Manage scheduling preferences."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage database." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("astral"),
		kong.Description("Automatic schedule generator for pending tasks"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Storage backend follows the config file extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Planner: planner.New(),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
