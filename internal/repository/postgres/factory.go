package postgres

import (
	"errors"

	"github.com/deepakMaj/Task-Manager-API/internal/db"
	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repositories struct {
	Users repo.Users
	Tasks repo.Tasks
}

func NewRepositories(pool db.PgxPool) Repositories {
	return Repositories{
		Users: &usersRepo{pool},
		Tasks: &tasksRepo{pool},
	}
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
