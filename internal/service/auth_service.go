package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/config"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/repository"
)

// ErrInvalidCredentials covers every credential-side login failure,
// including an unreachable identity store. Collapsing them keeps the
// response from leaking which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotAdmin means the credentials were valid but the email holds no
// admin registry entry with the admin role. Kept distinct from credential
// failures so operators can tell a locked-out colleague from a typo.
var ErrNotAdmin = errors.New("admin privileges required")

// AuthService runs the two-step login contract: verify credentials against
// the identity store, then authorize against the admin registry.
type AuthService struct {
	identities repository.IdentityRepository
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	gate       *auth.Gate
	sessionTTL time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	IdentityRepo repository.IdentityRepository
	AdminRepo    repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	tokens := auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.AllowLegacySessions)
	return &AuthService{
		identities: deps.IdentityRepo,
		admins:     deps.AdminRepo,
		tokens:     tokens,
		gate:       auth.NewGate(tokens, cfg.Auth.SessionTTL),
		sessionTTL: cfg.Auth.SessionTTL,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates the credentials and authorizes the email against the
// admin registry. Authentication success is necessary but not sufficient:
// an identity without an admin registry entry gets ErrNotAdmin. On success
// it returns the registry entry and a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AdminUser, string, error) {
	email = strings.TrimSpace(email)

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("identity lookup failed", zap.Error(err))
		}
		return nil, "", ErrInvalidCredentials
	}
	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotAdmin
		}
		s.logger.Error("admin registry lookup failed", zap.Error(err))
		return nil, "", ErrInvalidCredentials
	}
	if admin.Role != domain.RoleAdmin {
		return nil, "", ErrNotAdmin
	}

	token, err := s.tokens.Encode(auth.SessionClaims{
		UserID:   identity.ID,
		Email:    admin.Email,
		Name:     admin.Name,
		Role:     admin.Role,
		IssuedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// Gate exposes the authorization gate for middleware usage.
func (s *AuthService) Gate() *auth.Gate {
	return s.gate
}

// SessionTTL is the cookie max-age matching the gate's server-side check.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
