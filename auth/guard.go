package auth

import (
	"context"

	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// State is the position of a request in the guard state machine.
type State string

const (
	Unauthenticated State = "unauthenticated"
	Checking        State = "checking"
	Authorized      State = "authorized"
)

// Decision is the result of a guard check. Session is set only when State is
// Authorized.
type Decision struct {
	State   State
	Session *Session
	Err     error
}

func (d Decision) Authorized() bool { return d.State == Authorized }

// Guard admits a session only when the remote role check succeeds for it. The
// role is looked up on every call.
type Guard struct {
	provider Provider
	roles    RoleChecker
	role     string
}

func NewGuard(provider Provider, roles RoleChecker, role string) *Guard {
	if role == "" {
		role = models.RoleAdmin
	}
	return &Guard{provider: provider, roles: roles, role: role}
}

func (g *Guard) Role() string { return g.role }

// Check resolves the session behind accessToken and verifies its role. A valid
// session that fails the role check, or whose check errors, is signed out.
func (g *Guard) Check(ctx context.Context, accessToken string) Decision {
	session, err := g.provider.SessionFromToken(ctx, accessToken)
	if err != nil || session == nil {
		return Decision{State: Unauthenticated, Err: err}
	}

	decision := Decision{State: Checking, Session: session}
	ok, err := g.roles.HasRole(ctx, session.UserID, g.role)
	if err == nil && ok {
		decision.State = Authorized
		return decision
	}

	logger := log.With().Str("userID", session.UserID.String()).Str("role", g.role).Logger()
	if err != nil {
		logger.Error().Err(err).Msg("Role check failed, signing out")
	} else {
		logger.Warn().Msg("Session lacks required role, signing out")
	}

	if signOutErr := g.provider.SignOut(context.WithoutCancel(ctx), accessToken); signOutErr != nil {
		logger.Error().Err(signOutErr).Msg("Sign-out after failed role check failed")
	}

	if err == nil {
		err = errs.NewInsufficientRoleError(g.role)
	}
	return Decision{State: Unauthenticated, Err: err}
}
