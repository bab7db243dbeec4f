package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/deepakMaj/Task-Manager-API/internal/api/httpx"
	"github.com/deepakMaj/Task-Manager-API/internal/middleware"
	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/deepakMaj/Task-Manager-API/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TasksHandler struct {
	svc *services.TaskService
}

func NewTasksHandler(svc *services.TaskService) *TasksHandler {
	return &TasksHandler{svc: svc}
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var req struct {
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	t, err := h.svc.Create(r.Context(), u.ID, req.Description, req.Completed)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

// parseListOptions reads completed/limit/skip/sortBy query params.
// Unparseable values are treated as absent, not as errors.
func parseListOptions(r *http.Request) repo.TaskListOptions {
	var opts repo.TaskListOptions
	q := r.URL.Query()

	if v := q.Get("completed"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Completed = &b
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if v := q.Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Skip = n
		}
	}
	if v := q.Get("sortBy"); v != "" {
		parts := strings.SplitN(v, "_", 2)
		opts.SortBy = parts[0]
		opts.Desc = len(parts) == 2 && parts[1] == "desc"
	}
	return opts
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	tasks, err := h.svc.List(r.Context(), u.ID, parseListOptions(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasks)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
		return
	}
	t, err := h.svc.Get(r.Context(), u.ID, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
		return
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	t, err := h.svc.Update(r.Context(), u.ID, id, fields)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), u.ID, id); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
