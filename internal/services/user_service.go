package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/deepakMaj/Task-Manager-API/internal/api/validate"
	"github.com/deepakMaj/Task-Manager-API/internal/auth"
	"github.com/deepakMaj/Task-Manager-API/internal/errs"
	"github.com/deepakMaj/Task-Manager-API/internal/metrics"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
)

// Mailer sends the signup/deletion notification emails. Implemented by
// email.Client; failures are logged and never surfaced to the caller.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendFarewell(ctx context.Context, to, name string) error
}

// JobQueue runs a function asynchronously (worker.Pool).
type JobQueue interface {
	Submit(func())
}

type UserService struct {
	users repo.Users
	tasks repo.Tasks
	tm    *auth.TokenManager
	mail  Mailer
	queue JobQueue
}

func NewUserService(users repo.Users, tasks repo.Tasks, tm *auth.TokenManager, mail Mailer, queue JobQueue) *UserService {
	return &UserService{users: users, tasks: tasks, tm: tm, mail: mail, queue: queue}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Signup creates a user, opens its first session and queues the welcome
// email. Returns the created user and the session token.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	var ve validate.Errs
	if ef := validate.Required("name", name); ef != nil {
		ve = append(ve, *ef)
	}
	if ef := validate.Email("email", email); ef != nil {
		ve = append(ve, *ef)
	}
	if ef := validate.Password("password", password); ef != nil {
		ve = append(ve, *ef)
	}
	if len(ve) > 0 {
		return nil, "", ve
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}

	metrics.SignupsTotal.Inc()
	s.notify("welcome", u.Email, u.Name)
	return u, token, nil
}

// Login verifies credentials and opens a new session. Prior sessions stay
// valid. Unknown email and wrong password return the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", errs.ErrUnauthorized
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return nil, "", errs.ErrUnauthorized
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.Inc()
	return u, token, nil
}

func (s *UserService) issueToken(ctx context.Context, u *models.User) (string, error) {
	token, err := s.tm.Issue(u.ID)
	if err != nil {
		return "", err
	}
	if err := s.users.AppendToken(ctx, u.ID, token); err != nil {
		return "", err
	}
	u.Tokens = append(u.Tokens, token)
	return token, nil
}

// Logout revokes exactly the session the request authenticated with.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	return s.users.RemoveToken(ctx, userID, token)
}

// LogoutAll revokes every session of the user.
func (s *UserService) LogoutAll(ctx context.Context, userID string) error {
	return s.users.ClearTokens(ctx, userID)
}

var userUpdatable = map[string]bool{"name": true, "email": true, "password": true, "age": true}

// Update applies a partial profile update. Any key outside the allowed set
// rejects the whole request; changed fields are re-validated and a changed
// password is re-hashed.
func (s *UserService) Update(ctx context.Context, u *models.User, fields map[string]json.RawMessage) (*models.User, error) {
	for k := range fields {
		if !userUpdatable[k] {
			return nil, validate.Errs{{Field: k, Msg: "invalid field"}}
		}
	}

	uu := *u
	var ve validate.Errs
	if raw, ok := fields["name"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "name", Msg: "must be a string"})
		} else if ef := validate.Required("name", strings.TrimSpace(v)); ef != nil {
			ve = append(ve, *ef)
		} else {
			uu.Name = strings.TrimSpace(v)
		}
	}
	if raw, ok := fields["email"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "email", Msg: "must be a string"})
		} else if ef := validate.Email("email", normalizeEmail(v)); ef != nil {
			ve = append(ve, *ef)
		} else {
			uu.Email = normalizeEmail(v)
		}
	}
	if raw, ok := fields["password"]; ok {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "password", Msg: "must be a string"})
		} else if ef := validate.Password("password", v); ef != nil {
			ve = append(ve, *ef)
		} else {
			hash, err := auth.HashPassword(v)
			if err != nil {
				return nil, err
			}
			uu.PasswordHash = hash
		}
	}
	if raw, ok := fields["age"]; ok {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			ve = append(ve, validate.ErrField{Field: "age", Msg: "must be a number"})
		} else if ef := validate.MinInt("age", int64(v), 0); ef != nil {
			ve = append(ve, *ef)
		} else {
			uu.Age = v
		}
	}
	if len(ve) > 0 {
		return nil, ve
	}

	if err := s.users.Update(ctx, &uu); err != nil {
		return nil, err
	}
	return &uu, nil
}

// Delete removes the account. Owned tasks are deleted first so none can
// outlive the user, then the user row; the farewell email is best-effort.
func (s *UserService) Delete(ctx context.Context, u *models.User) error {
	if err := s.tasks.DeleteByOwner(ctx, u.ID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.notify("farewell", u.Email, u.Name)
	return nil
}

func (s *UserService) SetAvatar(ctx context.Context, userID string, data []byte) error {
	return s.users.SetAvatar(ctx, userID, data)
}

func (s *UserService) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	return s.users.GetAvatar(ctx, userID)
}

// notify queues a notification email; the operation that triggered it has
// already succeeded, so errors are only logged.
func (s *UserService) notify(kind, to, name string) {
	if s.mail == nil || s.queue == nil {
		return
	}
	s.queue.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var err error
		if kind == "welcome" {
			err = s.mail.SendWelcome(ctx, to, name)
		} else {
			err = s.mail.SendFarewell(ctx, to, name)
		}
		if err != nil {
			slog.Warn("notification email failed", "kind", kind, "err", err)
			metrics.EmailsTotal.WithLabelValues(kind, "error").Inc()
			return
		}
		metrics.EmailsTotal.WithLabelValues(kind, "ok").Inc()
	})
}
