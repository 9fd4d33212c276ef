package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/auth"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	provider     auth.Provider
	guard        *auth.Guard
	secureCookie bool
}

func newAuthHandler(provider auth.Provider, guard *auth.Guard, secureCookie bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		provider:     provider,
		guard:        guard,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the admin session to the client
type SessionResponse struct {
	State   auth.State    `json:"state"`
	Session *auth.Session `json:"session,omitempty"`
	Message string        `json:"message,omitempty"`
}

// login signs in with email and password. A user without the admin role is
// signed out again and refused.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		session, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		decision := h.guard.Check(r.Context(), session.AccessToken)
		if !decision.Authorized() {
			h.logger.Warn().Str("email", req.Email).Msg("Sign-in refused by role check")
			h.responder.WriteError(w, errs.NewInsufficientRoleError(h.guard.Role()))
			return
		}

		h.setSessionCookie(w, session.AccessToken, session.ExpiresAt)
		h.responder.WriteJSON(w, SessionResponse{
			State:   decision.State,
			Session: session,
			Message: "Signed in successfully",
		})
	}
}

// logout ends the session. It always clears the cookie.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := accessToken(r)
		h.clearSessionCookie(w)
		if token != "" {
			if err := h.provider.SignOut(r.Context(), token); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		h.responder.WriteJSON(w, SessionResponse{State: auth.Unauthenticated, Message: "Signed out successfully"})
	}
}

// session reports whether the caller is currently admitted to the admin area
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := h.guard.Check(r.Context(), accessToken(r))
		if !decision.Authorized() {
			h.clearSessionCookie(w)
			h.responder.WriteJSON(w, SessionResponse{State: auth.Unauthenticated})
			return
		}
		h.responder.WriteJSON(w, SessionResponse{State: decision.State, Session: decision.Session})
	}
}

func (h authHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h authHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
