package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// Poster sends a JSON body to an API endpoint and decodes the reply into out.
type Poster interface {
	Post(ctx context.Context, endpoint string, body, out any) error
}

// TokenStore is the durable side of a jwt-mode session.
type TokenStore interface {
	SaveSession(ctx context.Context, token string, p *models.Principal) error
	Token(ctx context.Context) (string, bool)
	User(ctx context.Context) (*models.Principal, bool)
	SignOut(ctx context.Context)
}

// TokenService implements Service with backend-issued bearer tokens.
type TokenService struct {
	api    Poster
	store  TokenStore
	state  *State
	logger logging.Logger
}

var _ Service = (*TokenService)(nil)

// NewTokenService restores the persisted session, if a complete one exists.
// A stored principal without a credential (or the other way round) is
// discarded.
func NewTokenService(ctx context.Context, api Poster, store TokenStore, l logging.Logger) *TokenService {
	logger := l.With("module", "session", "mode", "jwt")

	var initial *models.Principal
	_, hasToken := store.Token(ctx)
	user, hasUser := store.User(ctx)
	switch {
	case hasToken && hasUser:
		initial = user
		logger.Info(ctx, "restored session", "user_id", user.ID, "role", user.EffectiveRole())
	case hasToken || hasUser:
		logger.Warn(ctx, "discarding incomplete stored session", "has_token", hasToken, "has_user", hasUser)
		store.SignOut(ctx)
	}

	return &TokenService{api: api, store: store, state: NewState(initial), logger: logger}
}

func (s *TokenService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := s.api.Post(ctx, common.EndpointLogin, models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		s.logger.Info(ctx, "login failed", "email", email, "error", err)
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMalformedResponse
	}

	p := models.PrincipalFrom(&resp)
	if err := s.store.SaveSession(ctx, resp.Token, p); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.state.Publish(p)
	s.logger.Info(ctx, "signed in", "user_id", p.ID, "role", p.Role)

	return &resp, nil
}

func (s *TokenService) Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	req = normalizeRegister(req)

	var identity models.Identity
	if err := s.api.Post(ctx, common.EndpointRegister, req, &identity); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "registered", "email", req.Email, "role", req.Role)
	return &identity, nil
}

func (s *TokenService) CurrentUser() *models.Principal {
	return s.state.Current()
}

func (s *TokenService) Logout(ctx context.Context) {
	s.store.SignOut(ctx)
	s.state.Publish(nil)
}

// Authenticated reads the store, not the in-memory state.
func (s *TokenService) Authenticated(ctx context.Context) bool {
	if _, ok := s.store.Token(ctx); !ok {
		return false
	}
	_, ok := s.store.User(ctx)
	return ok
}

func (s *TokenService) Credential(ctx context.Context) (string, bool) {
	return s.store.Token(ctx)
}

func (s *TokenService) Subscribe(ctx context.Context) <-chan *models.Principal {
	return s.state.Subscribe(ctx)
}

func (s *TokenService) ResetPassword(ctx context.Context, email string) (string, error) {
	return "", ErrResetUnsupported
}
