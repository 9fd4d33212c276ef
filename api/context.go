package api

import (
	"context"

	"github.com/rpupo63/bilingual-portfolio-backend/auth"
)

type keyType string

const (
	sessionKey keyType = "session"
)

// ctxWithSession adds the authorized admin session to the context
func ctxWithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxGetSession retrieves the admin session, if the request passed the guard
func ctxGetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*auth.Session)
	return session, ok && session != nil
}
