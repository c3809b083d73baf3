package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"invoicing-dashboard-backend/internal/auth"
	"invoicing-dashboard-backend/internal/service"
)

// AuthHandler handles login and logout requests
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
	sessionTTL  time.Duration
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookieName string, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	email := r.PostForm.Get("email")
	password := r.PostForm.Get("password")

	token, err := h.authService.SignIn(r.Context(), email, password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			if authErr.Category == auth.CategoryCredentials {
				respondMessage(w, http.StatusUnauthorized, "Invalid credentials.")
				return
			}
			respondMessage(w, http.StatusInternalServerError, "Something went wrong.")
			return
		}

		handleError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, service.DashboardPath, http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if err := h.authService.SignOut(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to discard session",
				slog.String("error", err.Error()),
			)
		}
	}

	// Expire the cookie regardless of whether the session was found
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
