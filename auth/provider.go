// Package auth signs the site owner in through Supabase Auth and guards the
// admin area on a live role check.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated Supabase session.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email,omitempty"`
}

// Provider is the hosted authentication service.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SessionFromToken returns the session an access token belongs to, or an
	// error when the token is missing, malformed or expired.
	SessionFromToken(ctx context.Context, accessToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// RoleChecker answers the has_role question against the backend.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}
