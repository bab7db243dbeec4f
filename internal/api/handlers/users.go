package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/deepakMaj/Task-Manager-API/internal/api/httpx"
	"github.com/deepakMaj/Task-Manager-API/internal/api/validate"
	"github.com/deepakMaj/Task-Manager-API/internal/middleware"
	"github.com/deepakMaj/Task-Manager-API/internal/models"
	"github.com/deepakMaj/Task-Manager-API/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxAvatarBytes = 1 << 20 // 1MB

type UsersHandler struct {
	svc *services.UserService
}

func NewUsersHandler(svc *services.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

type userResp struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *UsersHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	u, token, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, userResp{User: u, Token: token})
}

func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResp{User: u, Token: token})
}

func (h *UsersHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	token, _ := middleware.TokenFrom(r.Context())
	if err := h.svc.Logout(r.Context(), u.ID, token); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UsersHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	if err := h.svc.LogoutAll(r.Context(), u.ID); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	updated, err := h.svc.Update(r.Context(), u, fields)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	if err := h.svc.Delete(r.Context(), u); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// allowed avatar media types, detected from content
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *UsersHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+4096)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed",
			validate.Errs{{Field: "avatar", Msg: "file required (max 1MB)"}})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if len(data) > maxAvatarBytes {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed",
			validate.Errs{{Field: "avatar", Msg: "must be at most 1MB"}})
		return
	}
	if !imageTypes[http.DetectContentType(data)] {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed",
			validate.Errs{{Field: "avatar", Msg: "must be an image"}})
		return
	}

	if err := h.svc.SetAvatar(r.Context(), u.ID, data); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UsersHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFrom(r.Context())
	if err := h.svc.SetAvatar(r.Context(), u.ID, nil); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetAvatar serves a user's avatar publicly.
func (h *UsersHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
		return
	}
	data, err := h.svc.GetAvatar(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}
