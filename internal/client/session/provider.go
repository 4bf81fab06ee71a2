package session

import (
	"context"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// IdentityProvider is an external service that owns accounts and sessions.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.LoginResponse, error)
	SignUp(ctx context.Context, req models.RegisterRequest) (*models.Identity, error)
	SignOut(ctx context.Context, token string) error
	ForgetPassword(ctx context.Context, email string) (string, error)
}

// ProviderService implements Service by proxying to an IdentityProvider.
// Nothing is persisted locally; a restart means signing in again.
type ProviderService struct {
	idp    IdentityProvider
	state  *State
	logger logging.Logger
}

var _ Service = (*ProviderService)(nil)

func NewProviderService(idp IdentityProvider, l logging.Logger) *ProviderService {
	return &ProviderService{
		idp:    idp,
		state:  NewState(nil),
		logger: l.With("module", "session", "mode", "provider"),
	}
}

func (s *ProviderService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	resp, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Info(ctx, "provider sign-in failed", "email", email, "error", err)
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		return nil, ErrMalformedResponse
	}

	p := models.PrincipalFrom(resp)
	s.state.Publish(p)
	s.logger.Info(ctx, "signed in", "user_id", p.ID, "role", p.Role)
	return resp, nil
}

func (s *ProviderService) Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	return s.idp.SignUp(ctx, normalizeRegister(req))
}

func (s *ProviderService) CurrentUser() *models.Principal {
	return s.state.Current()
}

// Logout tells the provider to end the session. The local session is
// cleared even if the provider cannot be reached.
func (s *ProviderService) Logout(ctx context.Context) {
	if p := s.state.Current(); p != nil && p.Token != "" {
		if err := s.idp.SignOut(ctx, p.Token); err != nil {
			s.logger.Warn(ctx, "provider sign-out failed", "error", err)
		}
	}
	s.state.Publish(nil)
}

func (s *ProviderService) Authenticated(ctx context.Context) bool {
	_, ok := s.Credential(ctx)
	return ok
}

func (s *ProviderService) Credential(ctx context.Context) (string, bool) {
	p := s.state.Current()
	if p == nil || p.Token == "" {
		return "", false
	}
	return p.Token, true
}

func (s *ProviderService) Subscribe(ctx context.Context) <-chan *models.Principal {
	return s.state.Subscribe(ctx)
}

func (s *ProviderService) ResetPassword(ctx context.Context, email string) (string, error) {
	return s.idp.ForgetPassword(ctx, email)
}
