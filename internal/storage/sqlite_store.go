package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Damatnic/astral-planner/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	duration_min INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL DEFAULT '',
	due_date TEXT,
	type TEXT NOT NULL DEFAULT '',
	deleted_at TEXT
);
CREATE TABLE IF NOT EXISTS schedules (
	date TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	total_tasks INTEGER NOT NULL,
	total_duration_min INTEGER NOT NULL,
	average_confidence REAL NOT NULL,
	deleted_at TEXT
);
CREATE TABLE IF NOT EXISTS placements (
	schedule_date TEXT NOT NULL,
	position INTEGER NOT NULL,
	task_json TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	confidence REAL NOT NULL,
	PRIMARY KEY (schedule_date, position)
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed default preferences on first init
	if _, err := s.GetPreferences(); err != nil {
		if err := s.SavePreferences(models.Preferences{}.WithDefaults()); err != nil {
			return fmt.Errorf("failed to save default preferences: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'astral init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetPreferences() (models.Preferences, error) {
	rows, err := s.db.Query("SELECT key, value FROM preferences")
	if err != nil {
		return models.Preferences{}, err
	}
	defer rows.Close()

	prefs := models.Preferences{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Preferences{}, err
		}
		switch key {
		case "work_start":
			prefs.WorkStart = value
		case "work_end":
			prefs.WorkEnd = value
		case "break_min":
			if prefs.BreakMin, err = strconv.Atoi(value); err != nil {
				return models.Preferences{}, fmt.Errorf("parsing break_min: %w", err)
			}
		case "focus_session_min":
			if prefs.FocusSessionMin, err = strconv.Atoi(value); err != nil {
				return models.Preferences{}, fmt.Errorf("parsing focus_session_min: %w", err)
			}
		case "timezone":
			prefs.Timezone = value
		case "work_days":
			var days []int
			if err := json.Unmarshal([]byte(value), &days); err != nil {
				return models.Preferences{}, fmt.Errorf("parsing work_days: %w", err)
			}
			prefs.WorkDays = make([]time.Weekday, 0, len(days))
			for _, d := range days {
				wd, err := models.ISOWeekday(d)
				if err != nil {
					return models.Preferences{}, err
				}
				prefs.WorkDays = append(prefs.WorkDays, wd)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Preferences{}, err
	}

	if count == 0 {
		return models.Preferences{}, fmt.Errorf("preferences not found")
	}

	return prefs, nil
}

func (s *SQLiteStore) SavePreferences(prefs models.Preferences) error {
	days := make([]int, 0, len(prefs.WorkDays))
	for _, wd := range prefs.WorkDays {
		days = append(days, models.ToISOWeekday(wd))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to marshal work days: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := [][2]string{
		{"work_start", prefs.WorkStart},
		{"work_end", prefs.WorkEnd},
		{"break_min", strconv.Itoa(prefs.BreakMin)},
		{"focus_session_min", strconv.Itoa(prefs.FocusSessionMin)},
		{"timezone", prefs.Timezone},
		{"work_days", string(daysJSON)},
	}
	for _, pair := range pairs {
		if _, err := stmt.Exec(pair[0], pair[1]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, title, duration_min, priority, due_date, type, deleted_at
		FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)

	task, err := scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task with id %s not found", id)
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, duration_min, priority, due_date, type, deleted_at
		FROM tasks WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(scan func(...any) error) (models.Task, error) {
	var t models.Task
	var priority string
	var dueDate, deletedAt sql.NullString

	if err := scan(&t.ID, &t.Title, &t.DurationMin, &priority, &dueDate, &t.Type, &deletedAt); err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	if dueDate.Valid {
		parsed, err := time.Parse(time.RFC3339, dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parsing due date: %w", err)
		}
		t.DueDate = &parsed
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	return t, nil
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	var dueDate sql.NullString
	if task.DueDate != nil {
		dueDate = sql.NullString{String: task.DueDate.UTC().Format(time.RFC3339), Valid: true}
	}
	var deletedAt sql.NullString
	if task.DeletedAt != nil {
		deletedAt = sql.NullString{String: *task.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (id, title, duration_min, priority, due_date, type, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.DurationMin, string(task.Priority), dueDate, task.Type, deletedAt,
	)
	return err
}

func (s *SQLiteStore) DeleteTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("task with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE tasks SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreTask(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM tasks WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("task with id %s not found", id)
		}
		return fmt.Errorf("failed to check task existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE tasks SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) SaveSchedule(schedule models.Schedule) error {
	if schedule.DeletedAt != nil {
		return fmt.Errorf("cannot save a schedule with deletedAt set; use DeleteSchedule instead")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO schedules (date, generated_at, total_tasks, total_duration_min, average_confidence, deleted_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		schedule.Date, schedule.GeneratedAt.UTC().Format(time.RFC3339),
		schedule.Summary.TotalTasks, schedule.Summary.TotalDurationMin, schedule.Summary.AverageConfidence,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM placements WHERE schedule_date = ?", schedule.Date); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO placements (schedule_date, position, task_json, start_time, end_time, confidence)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range schedule.Placements {
		taskJSON, err := json.Marshal(p.Task)
		if err != nil {
			return fmt.Errorf("failed to marshal task: %w", err)
		}
		_, err = stmt.Exec(
			schedule.Date, i, string(taskJSON),
			p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339), p.Confidence,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSchedule(date string) (models.Schedule, error) {
	var generatedAt string
	var deletedAt sql.NullString
	schedule := models.Schedule{Date: date}

	err := s.db.QueryRow(`
		SELECT generated_at, total_tasks, total_duration_min, average_confidence, deleted_at
		FROM schedules WHERE date = ?`, date,
	).Scan(&generatedAt, &schedule.Summary.TotalTasks, &schedule.Summary.TotalDurationMin,
		&schedule.Summary.AverageConfidence, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Schedule{}, fmt.Errorf("no schedule found for date: %s", date)
		}
		return models.Schedule{}, err
	}
	if deletedAt.Valid {
		return models.Schedule{}, fmt.Errorf("no schedule found for date: %s", date)
	}

	schedule.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return models.Schedule{}, fmt.Errorf("parsing generated_at: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT task_json, start_time, end_time, confidence
		FROM placements WHERE schedule_date = ? ORDER BY position`, date)
	if err != nil {
		return models.Schedule{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskJSON, startStr, endStr string
		var p models.Placement
		if err := rows.Scan(&taskJSON, &startStr, &endStr, &p.Confidence); err != nil {
			return models.Schedule{}, err
		}
		if err := json.Unmarshal([]byte(taskJSON), &p.Task); err != nil {
			return models.Schedule{}, fmt.Errorf("parsing placement task: %w", err)
		}
		if p.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
			return models.Schedule{}, fmt.Errorf("parsing placement start: %w", err)
		}
		if p.End, err = time.Parse(time.RFC3339, endStr); err != nil {
			return models.Schedule{}, fmt.Errorf("parsing placement end: %w", err)
		}
		schedule.Placements = append(schedule.Placements, p)
	}

	return schedule, rows.Err()
}

func (s *SQLiteStore) DeleteSchedule(date string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM schedules WHERE date = ?", date).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no schedule found for date: %s", date)
		}
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("schedule for date %s is already deleted", date)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE schedules SET deleted_at = ? WHERE date = ?", now, date)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
