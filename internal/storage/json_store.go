package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Damatnic/astral-planner/internal/models"
)

type jsonStore struct {
	Version     int                        `json:"version"`
	Preferences models.Preferences         `json:"preferences"`
	Tasks       map[string]models.Task     `json:"tasks"`
	Schedules   map[string]models.Schedule `json:"schedules"`
}

// JSONStore keeps the whole data set in a single JSON file. It suits small
// personal data sets and makes debugging trivial.
type JSONStore struct {
	path  string
	store *jsonStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonStore{
		Version:     1,
		Preferences: models.Preferences{}.WithDefaults(),
		Tasks:       make(map[string]models.Task),
		Schedules:   make(map[string]models.Schedule),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'astral init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}
	if s.store.Schedules == nil {
		s.store.Schedules = make(map[string]models.Schedule)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetPreferences() (models.Preferences, error) {
	if s.store == nil {
		return models.Preferences{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Preferences, nil
}

func (s *JSONStore) SavePreferences(prefs models.Preferences) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Preferences = prefs
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}
	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task with id %s not found", id)
	}
	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var tasks []models.Task
	for _, task := range s.store.Tasks {
		if task.DeletedAt == nil {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	return s.AddTask(task)
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task with id %s not found", id)
	}
	if task.DeletedAt != nil {
		return fmt.Errorf("task with id %s is already deleted", id)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	task.DeletedAt = &now
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) RestoreTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task with id %s not found", id)
	}
	if task.DeletedAt == nil {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}
	task.DeletedAt = nil
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) SaveSchedule(schedule models.Schedule) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if schedule.DeletedAt != nil {
		return fmt.Errorf("cannot save a schedule with deletedAt set; use DeleteSchedule instead")
	}
	s.store.Schedules[schedule.Date] = schedule
	return s.save()
}

func (s *JSONStore) GetSchedule(date string) (models.Schedule, error) {
	if s.store == nil {
		return models.Schedule{}, fmt.Errorf("storage not loaded")
	}
	schedule, ok := s.store.Schedules[date]
	if !ok || schedule.DeletedAt != nil {
		return models.Schedule{}, fmt.Errorf("no schedule found for date: %s", date)
	}
	return schedule, nil
}

func (s *JSONStore) DeleteSchedule(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	schedule, ok := s.store.Schedules[date]
	if !ok || schedule.DeletedAt != nil {
		return fmt.Errorf("no schedule found for date: %s", date)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	schedule.DeletedAt = &now
	s.store.Schedules[date] = schedule
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
