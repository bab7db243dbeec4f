package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/deepakMaj/Task-Manager-API/internal/api/httpx"
	"github.com/deepakMaj/Task-Manager-API/internal/api/validate"
	"github.com/deepakMaj/Task-Manager-API/internal/errs"
)

// writeErr maps service errors onto the response taxonomy: validation 400,
// bad credentials 401, missing or foreign records 404, everything else 500.
func writeErr(w http.ResponseWriter, err error) {
	var ve validate.Errs
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed", ve)
	case errors.Is(err, errs.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed",
			validate.Errs{{Field: "email", Msg: "already in use"}})
	case errors.Is(err, errs.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "unable to login", nil)
	case errors.Is(err, errs.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
