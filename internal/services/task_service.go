package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/deepakMaj/Task-Manager-API/internal/api/validate"
	"github.com/deepakMaj/Task-Manager-API/internal/metrics"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
)

// TaskService scopes every operation to the authenticated owner. A task
// that does not exist and a task owned by someone else are reported the
// same way (not found).
type TaskService struct {
	tasks repo.Tasks
}

func NewTaskService(tasks repo.Tasks) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, owner, description string, completed bool) (*models.Task, error) {
	description = strings.TrimSpace(description)
	if ef := validate.Required("description", description); ef != nil {
		return nil, validate.Errs{*ef}
	}
	t := &models.Task{Description: description, Completed: completed, Owner: owner}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	metrics.TasksCreatedTotal.Inc()
	return t, nil
}

func (s *TaskService) List(ctx context.Context, owner string, opts repo.TaskListOptions) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, owner, opts)
}

func (s *TaskService) Get(ctx context.Context, owner, id string) (*models.Task, error) {
	return s.tasks.GetByIDAndOwner(ctx, id, owner)
}

var taskUpdatable = map[string]bool{"description": true, "completed": true}

// Update applies a partial task update; any key outside the allowed set
// rejects the whole request.
func (s *TaskService) Update(ctx context.Context, owner, id string, fields map[string]json.RawMessage) (*models.Task, error) {
	for k := range fields {
		if !taskUpdatable[k] {
			return nil, validate.Errs{{Field: k, Msg: "invalid field"}}
		}
	}

	t, err := s.tasks.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	var ve validate.Errs
	if raw, ok := fields["description"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "description", Msg: "must be a string"})
		} else if ef := validate.Required("description", strings.TrimSpace(v)); ef != nil {
			ve = append(ve, *ef)
		} else {
			t.Description = strings.TrimSpace(v)
		}
	}
	if raw, ok := fields["completed"]; ok {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "completed", Msg: "must be a boolean"})
		} else {
			t.Completed = v
		}
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, owner, id string) error {
	return s.tasks.Delete(ctx, id, owner)
}
