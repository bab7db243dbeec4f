package repository

import (
	"context"

	"github.com/deepakMaj/Task-Manager-API/internal/models"
)

// TaskListOptions narrows and orders an owner's task listing. Limit and
// Skip are ignored when <= 0; SortBy is the API-level field name and is
// matched against a whitelist by the implementation.
type TaskListOptions struct {
	Completed *bool
	Limit     int
	Skip      int
	SortBy    string
	Desc      bool
}

type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDAndToken resolves a session: the user must exist and the exact
	// token string must still be in its token list.
	GetByIDAndToken(ctx context.Context, id, token string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error

	AppendToken(ctx context.Context, id, token string) error
	RemoveToken(ctx context.Context, id, token string) error
	ClearTokens(ctx context.Context, id string) error

	SetAvatar(ctx context.Context, id string, avatar []byte) error
	GetAvatar(ctx context.Context, id string) ([]byte, error)
}

type Tasks interface {
	Create(ctx context.Context, t *models.Task) error
	GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Task, error)
	ListByOwner(ctx context.Context, owner string, opts TaskListOptions) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id, owner string) error
	// DeleteByOwner removes every task the owner has; run before deleting
	// the user row so no orphaned tasks survive an account deletion.
	DeleteByOwner(ctx context.Context, owner string) error
}
