package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/client/storage"
	"github.com/dmitrijs2005/schooldesk/internal/client/tokenstore"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePoster records calls and answers with canned values.
type fakePoster struct {
	loginResp *models.LoginResponse
	identity  *models.Identity
	err       error

	endpoints []string
	bodies    []any
}

func (f *fakePoster) Post(ctx context.Context, endpoint string, body, out any) error {
	f.endpoints = append(f.endpoints, endpoint)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return f.err
	}
	switch v := out.(type) {
	case *models.LoginResponse:
		if f.loginResp != nil {
			*v = *f.loginResp
		}
	case *models.Identity:
		if f.identity != nil {
			*v = *f.identity
		}
	}
	return nil
}

func newTokenStore(t *testing.T) *tokenstore.Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return tokenstore.New(db, logging.NewNopLogger())
}

var teacherLogin = &models.LoginResponse{
	Token: "tok-1",
	User:  models.IdentityUser{ID: 12, Email: "ms.k@school.test", Role: "teacher"},
}

func TestTokenService_LoginEstablishesSession(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore(t)
	api := &fakePoster{loginResp: teacherLogin}
	svc := NewTokenService(ctx, api, store, logging.NewNopLogger())

	sub, cancel := context.WithCancel(ctx)
	defer cancel()
	ch := svc.Subscribe(sub)
	assert.Nil(t, recv(t, ch))

	resp, err := svc.Login(ctx, "ms.k@school.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, teacherLogin, resp, "raw response is returned")
	assert.Equal(t, []string{"auth/login"}, api.endpoints)
	assert.Equal(t, models.LoginRequest{Email: "ms.k@school.test", Password: "pw"}, api.bodies[0])

	want := &models.Principal{ID: 12, Email: "ms.k@school.test", Username: "ms.k@school.test", Role: "teacher", Token: "tok-1"}
	assert.Equal(t, want, svc.CurrentUser())
	assert.Equal(t, want, recv(t, ch))

	tok, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
	stored, ok := store.User(ctx)
	require.True(t, ok)
	assert.Equal(t, want, stored)
	assert.True(t, svc.Authenticated(ctx))
}

func TestTokenService_LoginFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore(t)
	backendErr := errors.New("Invalid credentials")
	svc := NewTokenService(ctx, &fakePoster{err: backendErr}, store, logging.NewNopLogger())

	_, err := svc.Login(ctx, "x@school.test", "bad")
	require.ErrorIs(t, err, backendErr)
	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.Authenticated(ctx))
	_, ok := store.Token(ctx)
	assert.False(t, ok)
}

func TestTokenService_LoginWithoutTokenIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(ctx, &fakePoster{loginResp: &models.LoginResponse{}}, newTokenStore(t), logging.NewNopLogger())

	_, err := svc.Login(ctx, "a@b.c", "pw")
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Nil(t, svc.CurrentUser())
}

func TestTokenService_RegisterDoesNotSignIn(t *testing.T) {
	ctx := context.Background()
	api := &fakePoster{identity: &models.Identity{ID: 40, Email: "new@school.test", Role: "student"}}
	svc := NewTokenService(ctx, api, newTokenStore(t), logging.NewNopLogger())

	id, err := svc.Register(ctx, models.RegisterRequest{Email: "new@school.test", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(40), id.ID)
	assert.Equal(t, []string{"auth/register"}, api.endpoints)
	assert.Equal(t, "student", api.bodies[0].(models.RegisterRequest).Role, "role defaults to student")

	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.Authenticated(ctx))
}

func TestTokenService_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore(t)
	svc := NewTokenService(ctx, &fakePoster{loginResp: teacherLogin}, store, logging.NewNopLogger())

	_, err := svc.Login(ctx, "ms.k@school.test", "pw")
	require.NoError(t, err)

	svc.Logout(ctx)
	svc.Logout(ctx)

	assert.Nil(t, svc.CurrentUser())
	assert.False(t, svc.Authenticated(ctx))
	_, ok := svc.Credential(ctx)
	assert.False(t, ok)
}

func TestTokenService_RestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore(t)
	p := &models.Principal{ID: 1, Email: "root@school.test", Role: "admin", Token: "t"}
	require.NoError(t, store.SaveSession(ctx, "t", p))

	svc := NewTokenService(ctx, &fakePoster{}, store, logging.NewNopLogger())
	assert.Equal(t, p, svc.CurrentUser())
	assert.True(t, svc.Authenticated(ctx))
}

func TestTokenService_DiscardsIncompleteSession(t *testing.T) {
	ctx := context.Background()
	store := newTokenStore(t)
	require.NoError(t, store.SaveToken(ctx, "orphan"))

	svc := NewTokenService(ctx, &fakePoster{}, store, logging.NewNopLogger())
	assert.Nil(t, svc.CurrentUser())
	_, ok := store.Token(ctx)
	assert.False(t, ok)
}

func TestTokenService_ResetPasswordUnsupported(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(ctx, &fakePoster{}, newTokenStore(t), logging.NewNopLogger())
	_, err := svc.ResetPassword(ctx, "a@b.c")
	require.ErrorIs(t, err, ErrResetUnsupported)
}
