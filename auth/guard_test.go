package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	session  *Session
	err      error
	signOuts []string
}

func (f *fakeProvider) SignIn(context.Context, string, string) (*Session, error) {
	return f.session, f.err
}

func (f *fakeProvider) SessionFromToken(context.Context, string) (*Session, error) {
	return f.session, f.err
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.signOuts = append(f.signOuts, token)
	return nil
}

type fakeRoles struct {
	ok    bool
	err   error
	calls int
}

func (f *fakeRoles) HasRole(context.Context, uuid.UUID, string) (bool, error) {
	f.calls++
	return f.ok, f.err
}

func TestGuardCheck(t *testing.T) {
	session := &Session{AccessToken: "tok", UserID: uuid.New()}

	t.Run("no session", func(t *testing.T) {
		provider := &fakeProvider{err: errs.NewMissingTokenError()}
		roles := &fakeRoles{ok: true}
		d := NewGuard(provider, roles, "").Check(context.Background(), "")

		assert.Equal(t, Unauthenticated, d.State)
		assert.Nil(t, d.Session)
		assert.Zero(t, roles.calls)
		assert.Empty(t, provider.signOuts)
	})

	t.Run("admin role", func(t *testing.T) {
		provider := &fakeProvider{session: session}
		roles := &fakeRoles{ok: true}
		d := NewGuard(provider, roles, "admin").Check(context.Background(), "tok")

		assert.True(t, d.Authorized())
		assert.Equal(t, session, d.Session)
		assert.Empty(t, provider.signOuts)
	})

	t.Run("role missing signs out", func(t *testing.T) {
		provider := &fakeProvider{session: session}
		roles := &fakeRoles{ok: false}
		d := NewGuard(provider, roles, "admin").Check(context.Background(), "tok")

		assert.Equal(t, Unauthenticated, d.State)
		assert.True(t, errs.IsInsufficientRoleError(d.Err))
		assert.Equal(t, []string{"tok"}, provider.signOuts)
	})

	t.Run("role check error fails closed", func(t *testing.T) {
		provider := &fakeProvider{session: session}
		roles := &fakeRoles{err: errors.New("connection refused")}
		d := NewGuard(provider, roles, "admin").Check(context.Background(), "tok")

		assert.Equal(t, Unauthenticated, d.State)
		assert.EqualError(t, d.Err, "connection refused")
		assert.Equal(t, []string{"tok"}, provider.signOuts)
		assert.Equal(t, 1, roles.calls)
	})

	t.Run("role is checked on every call", func(t *testing.T) {
		provider := &fakeProvider{session: session}
		roles := &fakeRoles{ok: true}
		g := NewGuard(provider, roles, "admin")

		g.Check(context.Background(), "tok")
		g.Check(context.Background(), "tok")
		assert.Equal(t, 2, roles.calls)
	})
}
