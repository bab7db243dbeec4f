package postgres

import (
	"context"
	"errors"

	"github.com/deepakMaj/Task-Manager-API/internal/db"
	"github.com/deepakMaj/Task-Manager-API/internal/errs"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct{ pool db.PgxPool }

func NewUsers(pool db.PgxPool) repository.Users {
	return &usersRepo{pool: pool}
}

const userColumns = `id, name, email, password_hash, age, tokens, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Tokens, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, name, email, password_hash, age) VALUES($1,$2,$3,$4,$5) RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return errs.ErrEmailTaken
	}
	return err
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) GetByIDAndToken(ctx context.Context, id, token string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1 AND $2 = ANY(tokens)`, id, token))
}

func (r *usersRepo) Update(ctx context.Context, u *models.User) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET name=$2, email=$3, password_hash=$4, age=$5, updated_at=now() WHERE id=$1 RETURNING updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age,
	).Scan(&u.UpdatedAt)
	if isUniqueViolation(err) {
		return errs.ErrEmailTaken
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AppendToken(ctx context.Context, id, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET tokens = array_append(tokens, $2), updated_at=now() WHERE id=$1`, id, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *usersRepo) RemoveToken(ctx context.Context, id, token string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET tokens = array_remove(tokens, $2), updated_at=now() WHERE id=$1`, id, token)
	return err
}

func (r *usersRepo) ClearTokens(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET tokens = '{}', updated_at=now() WHERE id=$1`, id)
	return err
}

func (r *usersRepo) SetAvatar(ctx context.Context, id string, avatar []byte) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar=$2, updated_at=now() WHERE id=$1`, id, avatar)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *usersRepo) GetAvatar(ctx context.Context, id string) ([]byte, error) {
	var avatar []byte
	err := r.pool.QueryRow(ctx, `SELECT avatar FROM users WHERE id=$1`, id).Scan(&avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if len(avatar) == 0 {
		return nil, errs.ErrNotFound
	}
	return avatar, nil
}
