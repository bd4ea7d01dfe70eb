package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/application/profile"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/middleware"
)

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

// ProfileResponse is the public shape of a profile. Hash, salt and
// activation token never appear in responses.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID.String(),
		Email:     p.Email,
		Username:  p.Username,
		Activated: p.Activated(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type ProfileHandler struct {
	profiles ports.ProfileRepository
	update   *profile.UpdateProfile
	guard    *middleware.ForgeryGuard
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProfileHandler(profiles ports.ProfileRepository, update *profile.UpdateProfile, guard *middleware.ForgeryGuard, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		update:   update,
		guard:    guard,
		validate: validator.New(),
		log:      log,
	}
}

// Get reads profiles by id, email, username or activation token, or lists
// them when no key is given. Every read also refreshes the anti-forgery
// cookie so a browser client always holds a token before its next mutating
// request.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guard.Issue(w); err != nil {
		h.log.Error().Err(err).Msg("csrf issue failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("id") != "":
		id, err := uuid.Parse(q.Get("id"))
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid profile id")
			return
		}
		p, err := h.profiles.GetByID(r.Context(), domain.NewProfileID(id))
		h.writeOne(w, p, err)
	case q.Get("email") != "":
		email := SanitizeEmail(q.Get("email"))
		if email == "" {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email")
			return
		}
		p, err := h.profiles.GetByEmail(r.Context(), email)
		h.writeOne(w, p, err)
	case q.Get("username") != "":
		username := SanitizeUsername(q.Get("username"))
		if username == "" {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid username")
			return
		}
		p, err := h.profiles.GetByUsername(r.Context(), username)
		h.writeOne(w, p, err)
	case q.Get("activation_token") != "":
		p, err := h.profiles.GetByActivationToken(r.Context(), q.Get("activation_token"))
		h.writeOne(w, p, err)
	default:
		limit := defaultListLimit
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxListLimit {
				writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid limit")
				return
			}
			limit = n
		}
		offset := 0
		if v := q.Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid offset")
				return
			}
			offset = n
		}
		list, err := h.profiles.List(r.Context(), limit, offset)
		if err != nil {
			writeDomainErr(w, h.log, err)
			return
		}
		out := make([]ProfileResponse, 0, len(list))
		for _, p := range list {
			out = append(out, NewProfileResponse(p))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": out})
	}
}

func (h *ProfileHandler) writeOne(w http.ResponseWriter, p *domain.Profile, err error) {
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	if p == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": NewProfileResponse(p)})
}

// Update modifies the signed-in profile. Absent fields stay untouched; the
// password only rotates when current, new and confirmation all arrive
// together.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid profile id")
		return
	}
	var body struct {
		Email              *string `json:"email" validate:"omitempty,email,max=254"`
		Username           *string `json:"username" validate:"omitempty,max=32"`
		CurrentPassword    *string `json:"current_password" validate:"omitempty,max=128"`
		NewPassword        *string `json:"new_password" validate:"omitempty,max=128"`
		NewPasswordConfirm *string `json:"new_password_confirm" validate:"omitempty,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	if body.Email != nil {
		email := SanitizeEmail(*body.Email)
		if email == "" {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email")
			return
		}
		body.Email = &email
	}
	if body.Username != nil {
		username := SanitizeUsername(*body.Username)
		if username == "" {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid username")
			return
		}
		body.Username = &username
	}

	profileID := domain.NewProfileID(id)
	_, err = h.update.Execute(r.Context(), profile.UpdateProfileInput{
		ID:                 profileID,
		Session:            middleware.SessionFromContext(r.Context()),
		Email:              body.Email,
		Username:           body.Username,
		CurrentPassword:    body.CurrentPassword,
		NewPassword:        body.NewPassword,
		NewPasswordConfirm: body.NewPasswordConfirm,
	})
	if err != nil {
		AuditLog(h.log, r, "profile.update", profileID.String(), false, err.Error())
		middleware.RecordAuthAttempt("update", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.update", profileID.String(), true, "")
	middleware.RecordAuthAttempt("update", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "profile updated"})
}
