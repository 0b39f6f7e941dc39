package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/config"
	"github.com/spec-kit/condo-service/internal/domain"
	"github.com/spec-kit/condo-service/internal/events"
	"github.com/spec-kit/condo-service/internal/repository"
)

// AuthService coordinates the login flow.
type AuthService struct {
	users     repository.UserRepository
	hasher    *auth.PasswordHasher
	tokenMgr  *auth.TokenManager
	events    events.Dispatcher
	logger    *zap.Logger
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// LoginResult is a freshly issued bearer token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *domain.User
}

// NewAuthService builds the service along with its hasher and token manager.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	// Compared against when the email is unknown so both failure paths cost one bcrypt check.
	dummy, err := hasher.Hash("condo-service-unknown-user")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     deps.UserRepo,
		hasher:    hasher,
		tokenMgr:  auth.NewTokenManager(auth.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.AccessTokenTTL()}),
		events:    deps.Dispatcher,
		logger:    loggerOrNop(deps.Logger),
		dummyHash: dummy,
	}, nil
}

// Authenticate verifies credentials and issues a token. Unknown email and
// wrong password both yield auth.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.hasher.Verify(password, s.dummyHash)
		s.publish(ctx, events.New(events.EventLoginFailed, 0, events.Actor{}, events.LoginFailedPayload{Email: email}))
		return nil, auth.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.publish(ctx, events.New(events.EventLoginFailed, user.ID, events.Actor{}, events.LoginFailedPayload{Email: email}))
		return nil, auth.ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventLoginSucceeded, user.ID, actorOf(user), nil))
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: user}, nil
}

// Logout records the event; tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) {
	actor := actorOf(user)
	s.publish(ctx, events.New(events.EventLogout, actor.UserID, actor, nil))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Hasher exposes the password hasher shared with the user service.
func (s *AuthService) Hasher() *auth.PasswordHasher {
	return s.hasher
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.events, s.logger, event)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Email: user.Email}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
