package storage

import "github.com/Damatnic/astral-planner/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Schedules
	SaveSchedule(models.Schedule) error
	GetSchedule(date string) (models.Schedule, error)
	DeleteSchedule(date string) error

	// Utils
	GetConfigPath() string
}
