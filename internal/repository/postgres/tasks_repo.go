package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/deepakMaj/Task-Manager-API/internal/db"
	"github.com/deepakMaj/Task-Manager-API/internal/errs"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type tasksRepo struct{ pool db.PgxPool }

func NewTasks(pool db.PgxPool) repository.Tasks {
	return &tasksRepo{pool: pool}
}

// sortColumns maps API-level sort field names to columns. Anything not in
// here falls back to insertion order.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

const taskColumns = `id, description, completed, owner, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *tasksRepo) Create(ctx context.Context, t *models.Task) error {
	t.ID = uuid.NewString()
	return r.pool.QueryRow(ctx,
		`INSERT INTO tasks(id, description, completed, owner) VALUES($1,$2,$3,$4) RETURNING created_at, updated_at`,
		t.ID, t.Description, t.Completed, t.Owner,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *tasksRepo) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Task, error) {
	return scanTask(r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id=$1 AND owner=$2`, id, owner))
}

func (r *tasksRepo) ListByOwner(ctx context.Context, owner string, opts repository.TaskListOptions) ([]models.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE owner=$1`
	args := []any{owner}

	if opts.Completed != nil {
		q += ` AND completed=$2`
		args = append(args, *opts.Completed)
	}
	if col, ok := sortColumns[opts.SortBy]; ok {
		q += ` ORDER BY ` + col
		if opts.Desc {
			q += ` DESC`
		}
	} else {
		q += ` ORDER BY created_at`
	}
	if opts.Limit > 0 {
		q += ` LIMIT ` + strconv.Itoa(opts.Limit)
	}
	if opts.Skip > 0 {
		q += ` OFFSET ` + strconv.Itoa(opts.Skip)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasksRepo) Update(ctx context.Context, t *models.Task) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE tasks SET description=$3, completed=$4, updated_at=now() WHERE id=$1 AND owner=$2 RETURNING updated_at`,
		t.ID, t.Owner, t.Description, t.Completed,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

func (r *tasksRepo) Delete(ctx context.Context, id, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1 AND owner=$2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteByOwner(ctx context.Context, owner string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE owner=$1`, owner)
	return err
}
