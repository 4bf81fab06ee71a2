// Package services contains server-side business logic. This file implements
// UserService, which handles registration, sign-in, token verification and
// sign-out for both the REST API and the identity provider.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
	"github.com/dmitrijs2005/schooldesk/internal/server/auth"
	"github.com/dmitrijs2005/schooldesk/internal/server/metrics"
	"github.com/dmitrijs2005/schooldesk/internal/server/models"
	"github.com/dmitrijs2005/schooldesk/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// ResetMessage is returned by ForgetPassword whether or not the account exists.
const ResetMessage = "If the account exists, a password reset link has been sent."

// Session is a signed-in account and its token.
type Session struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create accounts with a bcrypt password hash
// - Login: verify credentials and mint a token
// - Authenticate: resolve a bearer token to its account
// - Logout: revoke a token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	logger      logging.Logger
	hashCost    int
}

// NewUserService constructs a UserService. db may be nil for the in-memory backend.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		logger:      l.With("module", "users"),
		hashCost:    bcrypt.DefaultCost,
	}
}

func ValidRole(role string) bool {
	switch role {
	case common.RoleAdmin, common.RoleTeacher, common.RoleStudent:
		return true
	}
	return false
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.ErrorInvalidEmail
	}
	return email, nil
}

// Register creates an account. An empty role becomes common.DefaultRole.
func (s *UserService) Register(ctx context.Context, email, password, role string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, common.ErrorInvalidCredentials
	}
	if role == "" {
		role = common.DefaultRole
	}
	if !ValidRole(role) {
		return nil, common.ErrorInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	s.logger.Info(ctx, "user registered", "user_id", u.ID, "role", role)
	return u, nil
}

// Login verifies the password and, on success, returns a new Session.
// Unknown emails and wrong passwords both yield ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Subject{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}
	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves a token to the account it was issued for. Token
// errors are wrapped in ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout revokes token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.issuer.Revoke(token); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	metrics.TokensRevokedTotal.Inc()
	return nil
}

// ForgetPassword starts a password reset. No mail is delivered by the
// development backend; the request is only logged.
func (s *UserService) ForgetPassword(ctx context.Context, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInternal
		}
		s.logger.Debug(ctx, "password reset for unknown account")
		return ResetMessage, nil
	}

	s.logger.Info(ctx, "password reset requested", "email", email)
	return ResetMessage, nil
}

// SeedAdmin makes sure an admin account with email exists.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) error {
	_, err := s.Register(ctx, email, password, common.RoleAdmin)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return nil
	}
	return err
}
