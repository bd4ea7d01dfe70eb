package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }.
func writeErr(w http.ResponseWriter, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps a flow error to HTTP. Unknown errors are logged with
// detail and reported as a bare internal error so nothing leaks to callers.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrValidation):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrEmailInUse), errors.Is(err, domerrors.ErrUsernameTaken):
		writeErr(w, http.StatusForbidden, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrNotActivated):
		writeErr(w, http.StatusForbidden, ErrCodeNotActivated, err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domerrors.ErrCurrentPassword):
		writeErr(w, http.StatusUnauthorized, ErrCodeCurrentPassword, err.Error())
	case errors.Is(err, domerrors.ErrProfileNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrDispatch):
		writeErr(w, http.StatusInternalServerError, ErrCodeDispatchFailed, domerrors.ErrDispatch.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
