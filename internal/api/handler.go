// Package api exposes the schedule planner over an HTTP boundary. The
// surrounding deployment owns authentication, rate limiting, and persistence
// of the returned placements.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Damatnic/astral-planner/internal/logger"
	"github.com/Damatnic/astral-planner/internal/models"
	"github.com/Damatnic/astral-planner/internal/planner"
)

type Handler struct {
	planner *planner.Planner
	now     func() time.Time
}

func NewHandler(p *planner.Planner) *Handler {
	return &Handler{
		planner: p,
		now:     time.Now,
	}
}

// RegisterRoutes attaches the API endpoints to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/schedule/generate", h.handleGenerate)
	mux.HandleFunc("/healthz", h.handleHealth)
}

// generateRequest is the wire shape of a planning call. Tasks is kept raw so
// a missing or non-array value can be rejected explicitly.
type generateRequest struct {
	Tasks       json.RawMessage     `json:"tasks"`
	Preferences *preferencesRequest `json:"preferences"`
}

type preferencesRequest struct {
	WorkingHours struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"workingHours"`
	BreakDuration      int    `json:"breakDuration"`
	FocusSessionLength int    `json:"focusSessionLength"`
	Timezone           string `json:"timezone"`
	WorkDays           []int  `json:"workDays"`
}

type generateResponse struct {
	Schedule []models.Placement `json:"schedule"`
	Summary  responseSummary    `json:"summary"`
}

type responseSummary struct {
	TotalTasks        int       `json:"totalTasks"`
	TotalDuration     int       `json:"totalDuration"`
	AverageConfidence float64   `json:"averageConfidence"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Tasks) == 0 || string(req.Tasks) == "null" {
		writeError(w, http.StatusBadRequest, "tasks is required and must be an array")
		return
	}
	var tasks []models.Task
	if err := json.Unmarshal(req.Tasks, &tasks); err != nil {
		writeError(w, http.StatusBadRequest, "tasks must be an array of task objects")
		return
	}

	prefs, err := req.preferences()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := h.now()
	placements, err := h.planner.Plan(tasks, prefs, now)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("schedule generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "schedule generation failed")
		return
	}

	summary := models.Summarize(placements)
	logger.Info("schedule generated", "tasks", summary.TotalTasks, "avgConfidence", summary.AverageConfidence)

	writeJSON(w, http.StatusOK, generateResponse{
		Schedule: placements,
		Summary: responseSummary{
			TotalTasks:        summary.TotalTasks,
			TotalDuration:     summary.TotalDurationMin,
			AverageConfidence: summary.AverageConfidence,
			GeneratedAt:       now,
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// preferences converts the wire preferences to the internal model. Defaults
// are applied later by the planner; only shape is handled here.
func (r *generateRequest) preferences() (models.Preferences, error) {
	if r.Preferences == nil {
		return models.Preferences{}, nil
	}

	prefs := models.Preferences{
		WorkStart:       r.Preferences.WorkingHours.Start,
		WorkEnd:         r.Preferences.WorkingHours.End,
		BreakMin:        r.Preferences.BreakDuration,
		FocusSessionMin: r.Preferences.FocusSessionLength,
		Timezone:        r.Preferences.Timezone,
	}
	if r.Preferences.WorkDays != nil {
		prefs.WorkDays = make([]time.Weekday, 0, len(r.Preferences.WorkDays))
		for _, n := range r.Preferences.WorkDays {
			wd, err := models.ISOWeekday(n)
			if err != nil {
				return models.Preferences{}, err
			}
			prefs.WorkDays = append(prefs.WorkDays, wd)
		}
	}
	return prefs, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
