package services_test

import (
	"context"
	"testing"

	"github.com/deepakMaj/Task-Manager-API/internal/api/validate"
	"github.com/deepakMaj/Task-Manager-API/internal/errs"
	"github.com/deepakMaj/Task-Manager-API/internal/mocks"
	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/deepakMaj/Task-Manager-API/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService() (*services.TaskService, *mocks.Tasks) {
	tasks := mocks.NewTasks()
	return services.NewTaskService(tasks), tasks
}

func TestTaskCreate(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "u-1", "  buy milk  ", false)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Description)
	assert.Equal(t, "u-1", task.Owner)
	assert.False(t, task.Completed)

	_, err = svc.Create(ctx, "u-1", "   ", false)
	var ve validate.Errs
	require.ErrorAs(t, err, &ve)
}

func TestTaskList_FilterAndPagination(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u-1", "one", true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u-1", "two", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u-1", "three", true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u-2", "other", true)
	require.NoError(t, err)

	completed := true
	got, err := svc.List(ctx, "u-1", repo.TaskListOptions{Completed: &completed})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.List(ctx, "u-1", repo.TaskListOptions{Completed: &completed, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Description, "first matching task by insertion order")

	got, err = svc.List(ctx, "u-1", repo.TaskListOptions{Completed: &completed, Limit: 1, Skip: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "three", got[0].Description)
}

func TestTaskOwnershipConflation(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	mine, err := svc.Create(ctx, "u-1", "mine", false)
	require.NoError(t, err)

	// foreign task and missing task look identical
	_, errForeign := svc.Get(ctx, "u-2", mine.ID)
	_, errMissing := svc.Get(ctx, "u-2", "10000000-0000-0000-0000-999999999999")
	require.ErrorIs(t, errForeign, errs.ErrNotFound)
	require.ErrorIs(t, errMissing, errs.ErrNotFound)

	_, err = svc.Update(ctx, "u-2", mine.ID, rawFields(t, map[string]any{"completed": true}))
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "u-2", mine.ID), errs.ErrNotFound)

	// owner still sees it untouched
	got, err := svc.Get(ctx, "u-1", mine.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestTaskUpdate_FieldWhitelist(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "u-1", "mine", false)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u-1", task.ID, rawFields(t, map[string]any{"owner": "u-2"}))
	var ve validate.Errs
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "invalid field", ve[0].Msg)

	_, err = svc.Update(ctx, "u-1", task.ID, rawFields(t, map[string]any{"description": ""}))
	require.ErrorAs(t, err, &ve)

	updated, err := svc.Update(ctx, "u-1", task.ID, rawFields(t, map[string]any{"description": "done deal", "completed": true}))
	require.NoError(t, err)
	assert.Equal(t, "done deal", updated.Description)
	assert.True(t, updated.Completed)
}
