// Package session tracks who is signed in and exposes the four session
// operations (login, register, current user, logout) behind one interface.
// Two implementations exist: TokenService talks to the REST backend and keeps
// the session in the local token store, ProviderService delegates to an
// external identity provider and keeps the session in memory only. Which one
// runs is decided once at start.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/common"
)

const defaultRole = common.DefaultRole

var (
	ErrMalformedResponse = errors.New("malformed login response")
	ErrResetUnsupported  = errors.New("password reset is not available in this auth mode")
)

// Service is the capability every auth mode provides.
type Service interface {
	// Login authenticates and, on success, establishes the session. On
	// failure the error is returned as is and the session is untouched.
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	// Register creates an account. It never signs the new account in.
	Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error)
	// CurrentUser returns the signed-in principal without any I/O.
	CurrentUser() *models.Principal
	// Logout clears the session. Calling it while signed out is a no-op
	// apart from re-publishing the signed-out state.
	Logout(ctx context.Context)
	// Authenticated reports whether a credential and a principal are both held.
	Authenticated(ctx context.Context) bool
	// Credential returns the bearer credential for outbound requests.
	Credential(ctx context.Context) (string, bool)
	// Subscribe streams the current principal and every later change.
	Subscribe(ctx context.Context) <-chan *models.Principal
	// ResetPassword starts a password reset for email.
	ResetPassword(ctx context.Context, email string) (string, error)
}

func normalizeRegister(req models.RegisterRequest) models.RegisterRequest {
	if req.Role == "" {
		req.Role = defaultRole
	}
	return req
}
