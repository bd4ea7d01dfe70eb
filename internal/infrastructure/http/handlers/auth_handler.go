package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/application/profile"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
	"github.com/rlewis2892/creepy-octo-meow/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signup        *profile.Signup
	signin        *profile.Signin
	activate      *profile.Activate
	sessions      ports.SessionStore
	secureCookies bool
	sessionTTL    time.Duration
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(signup *profile.Signup, signin *profile.Signin, activate *profile.Activate, sessions ports.SessionStore, secureCookies bool, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:        signup,
		signin:        signin,
		activate:      activate,
		sessions:      sessions,
		secureCookies: secureCookies,
		sessionTTL:    sessionTTL,
		validate:      validator.New(),
		log:           log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email           string `json:"email" validate:"required,email,max=254"`
		Username        string `json:"username" validate:"required,max=32"`
		Password        string `json:"password" validate:"required,max=128"`
		PasswordConfirm string `json:"password_confirm" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	username := SanitizeUsername(body.Username)
	password := SanitizePassword(body.Password)
	if email == "" || username == "" || password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email, username or password length")
		return
	}
	_, err := h.signup.Execute(r.Context(), profile.SignupInput{
		Email:           email,
		Username:        username,
		Password:        password,
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
	})
	if err != nil {
		AuditLog(h.log, r, "profile.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.signup", "", true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "check your email for an activation link",
	})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email or password length")
		return
	}
	result, err := h.signin.Execute(r.Context(), profile.SigninInput{Email: email, Password: password})
	if err != nil {
		AuditLog(h.log, r, "profile.signin", "", false, err.Error())
		middleware.RecordAuthAttempt("signin", false)
		writeDomainErr(w, h.log, err)
		return
	}
	h.setSessionCookie(w, result.SessionID)
	AuditLog(h.log, r, "profile.signin", result.Profile.ID.String(), true, "")
	middleware.RecordAuthAttempt("signin", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": NewProfileResponse(result.Profile),
	})
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.log.Error().Err(err).Msg("session delete failed")
		}
	}
	h.clearSessionCookie(w)
	session := middleware.SessionFromContext(r.Context())
	profileID := ""
	if session != nil {
		profileID = session.ProfileID.String()
	}
	AuditLog(h.log, r, "profile.signout", profileID, true, "")
	w.WriteHeader(http.StatusNoContent)
}

// Activate consumes the token from the emailed link. The endpoint is a GET
// so the link works straight from a mail client.
func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	_, err := h.activate.Execute(r.Context(), profile.ActivateInput{Token: token})
	if err != nil {
		AuditLog(h.log, r, "profile.activate", "", false, err.Error())
		middleware.RecordAuthAttempt("activate", false)
		// A missing or already-consumed token reads as a plain failure to
		// avoid confirming which tokens ever existed.
		if err == domerrors.ErrProfileNotFound {
			writeErr(w, http.StatusNotFound, ErrCodeNotFound, "activation token not found")
			return
		}
		writeDomainErr(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "profile.activate", "", true, "")
	middleware.RecordAuthAttempt("activate", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "account activated, you can sign in now",
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
