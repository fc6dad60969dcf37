package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

type classifyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Advise      bool   `json:"advise"`
}

// classifyResponse is a Result plus the tier's presentation attributes.
type classifyResponse struct {
	difficulty.Result
	Emoji  string             `json:"emoji"`
	Color  string             `json:"color"`
	Label  string             `json:"label"`
	Advice *difficulty.Advice `json:"advice,omitempty"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res := difficulty.Classify(req.Title, req.Description)
	resp := classifyResponse{
		Result: res,
		Emoji:  difficulty.EmojiForTier(res.Tier),
		Color:  difficulty.ColorForTier(res.Tier),
		Label:  difficulty.DescriptionForTier(res.Tier),
	}

	if req.Advise && s.advisor != nil && difficulty.NeedsAdvice(res, s.threshold) {
		advice, err := s.advisor.Advise(r.Context(), req.Title, req.Description, res)
		if err != nil {
			// The heuristic answer still stands.
			slog.Warn("difficulty advice failed", "error", err)
		} else {
			resp.Advice = advice
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	tiers := difficulty.AllTiers()
	out := make([]difficulty.Info, len(tiers))
	for i, t := range tiers {
		out[i] = difficulty.InfoFor(t)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := tasks.ListOptions{}

	switch status := store.TaskStatus(q.Get("status")); status {
	case store.StatusAny, store.StatusOpen, store.StatusCompleted:
		opts.Status = status
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "status must be open or completed")
		return
	}

	if v := q.Get("tier"); v != "" {
		tier, ok := difficulty.ParseTier(v)
		if !ok {
			respondError(w, http.StatusBadRequest, "validation_error", "tier must be easy, medium or hard")
			return
		}
		opts.Tier = tier
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}

	list, err := s.tasks.List(r.Context(), opts)
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tier        string `json:"tier"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	in := tasks.CreateInput{Title: req.Title, Description: req.Description}
	if req.Tier != "" {
		tier, ok := difficulty.ParseTier(req.Tier)
		if !ok {
			respondError(w, http.StatusBadRequest, "validation_error", "tier must be easy, medium or hard")
			return
		}
		in.Tier = &tier
	}

	task, err := s.tasks.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, tasks.ErrTitleRequired) {
			respondError(w, http.StatusBadRequest, "validation_error", "title is required")
			return
		}
		slog.Error("failed to create task", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondTaskError(w, err, "failed to get task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	c, err := s.tasks.Complete(r.Context(), chi.URLParam(r, "id"), s.now())
	if err != nil {
		s.respondTaskError(w, err, "failed to complete task")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.tasks.Stats(r.Context(), s.now())
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) respondTaskError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		respondError(w, http.StatusNotFound, "task_not_found", "task not found")
	case errors.Is(err, tasks.ErrAlreadyCompleted):
		respondError(w, http.StatusConflict, "already_completed", "task is already completed")
	default:
		slog.Error(msg, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", msg)
	}
}
