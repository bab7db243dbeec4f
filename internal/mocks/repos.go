// Package mocks provides in-memory repository implementations for tests.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/deepakMaj/Task-Manager-API/internal/errs"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/deepakMaj/Task-Manager-API/internal/repository"
)

// Users is an in-memory repository.Users. Ops is an optional shared journal
// recording destructive calls, used to assert cascade ordering.
type Users struct {
	mu   sync.Mutex
	byID map[string]*models.User
	seq  int
	Ops  *[]string
}

func NewUsers() *Users {
	return &Users{byID: map[string]*models.User{}}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Tokens = append([]string(nil), u.Tokens...)
	cp.Avatar = append([]byte(nil), u.Avatar...)
	return &cp
}

func (r *Users) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.byID {
		if ex.Email == u.Email {
			return errs.ErrEmailTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	r.byID[u.ID] = copyUser(u)
	return nil
}

func (r *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Users) GetByIDAndToken(ctx context.Context, id, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	for _, t := range u.Tokens {
		if t == token {
			return copyUser(u), nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Users) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.byID[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	for id, other := range r.byID {
		if id != u.ID && other.Email == u.Email {
			return errs.ErrEmailTaken
		}
	}
	ex.Name, ex.Email, ex.PasswordHash, ex.Age = u.Name, u.Email, u.PasswordHash, u.Age
	return nil
}

func (r *Users) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.byID, id)
	if r.Ops != nil {
		*r.Ops = append(*r.Ops, "delete user")
	}
	return nil
}

func (r *Users) AppendToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (r *Users) RemoveToken(ctx context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (r *Users) ClearTokens(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Tokens = nil
	}
	return nil
}

func (r *Users) SetAvatar(ctx context.Context, id string, avatar []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Avatar = append([]byte(nil), avatar...)
	return nil
}

func (r *Users) GetAvatar(ctx context.Context, id string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok || len(u.Avatar) == 0 {
		return nil, errs.ErrNotFound
	}
	return append([]byte(nil), u.Avatar...), nil
}

// Tasks is an in-memory repository.Tasks preserving insertion order.
type Tasks struct {
	mu    sync.Mutex
	items []*models.Task
	seq   int
	Ops   *[]string
}

func NewTasks() *Tasks {
	return &Tasks{}
}

func (r *Tasks) Create(ctx context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = fmt.Sprintf("10000000-0000-0000-0000-%012d", r.seq)
	cp := *t
	r.items = append(r.items, &cp)
	return nil
}

func (r *Tasks) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if t.ID == id && t.Owner == owner {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *Tasks) ListByOwner(ctx context.Context, owner string, opts repository.TaskListOptions) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Task{}
	for _, t := range r.items {
		if t.Owner != owner {
			continue
		}
		if opts.Completed != nil && t.Completed != *opts.Completed {
			continue
		}
		out = append(out, *t)
	}
	switch opts.SortBy {
	case "description":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	case "completed":
		sort.SliceStable(out, func(i, j int) bool { return !out[i].Completed && out[j].Completed })
	}
	if opts.Desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if opts.Skip > 0 {
		if opts.Skip >= len(out) {
			out = out[:0]
		} else {
			out = out[opts.Skip:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *Tasks) Update(ctx context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.ID == t.ID && ex.Owner == t.Owner {
			ex.Description, ex.Completed = t.Description, t.Completed
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *Tasks) Delete(ctx context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.items {
		if t.ID == id && t.Owner == owner {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *Tasks) DeleteByOwner(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, t := range r.items {
		if t.Owner != owner {
			kept = append(kept, t)
		}
	}
	r.items = kept
	if r.Ops != nil {
		*r.Ops = append(*r.Ops, "delete tasks")
	}
	return nil
}

// Mailer records notification sends.
type Mailer struct {
	mu    sync.Mutex
	Sent  []string // "welcome:<email>" / "farewell:<email>"
	Fail  bool
	Calls int
}

func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.record("welcome", to)
}

func (m *Mailer) SendFarewell(ctx context.Context, to, name string) error {
	return m.record("farewell", to)
}

func (m *Mailer) record(kind, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Fail {
		return fmt.Errorf("mail provider down")
	}
	m.Sent = append(m.Sent, kind+":"+to)
	return nil
}

// SyncQueue runs submitted jobs inline for deterministic tests.
type SyncQueue struct{}

func (SyncQueue) Submit(f func()) { f() }
