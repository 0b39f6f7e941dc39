package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/domain"
	"github.com/spec-kit/condo-service/internal/events"
	"github.com/spec-kit/condo-service/internal/repository"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

const (
	msgUserNotFound    = "Usuário não encontrado"
	msgDuplicateEmail  = "Email já está em uso"
	msgForbidden       = "Permissão insuficiente"
	msgAdminRoleDenied = "Somente administradores podem atribuir papéis"
)

// UserService manages user accounts.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	events events.Dispatcher
	logger *zap.Logger
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateUserInput carries a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries a partial update; nil fields are left alone.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:  deps.UserRepo,
		hasher: deps.Hasher,
		events: deps.Dispatcher,
		logger: loggerOrNop(deps.Logger),
	}
}

// cleanName trims a display name and rejects whitespace-only values.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError("Dados inválidos", map[string]any{"name": "notblank"})
	}
	return name, nil
}

func requireAdmin(actor *domain.User) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden(msgForbidden)
	}
	return nil
}

func requireSelfOrAdmin(actor *domain.User, id int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("Não autenticado")
	}
	if actor.ID != id && !actor.IsAdmin() {
		return apperrors.NewForbidden(msgForbidden)
	}
	return nil
}

// List returns every user. Admin only.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Get fetches a user visible to the actor (self or admin).
func (s *UserService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if err := requireSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

// Create registers an account. Granting the admin role requires an admin
// actor, except for the very first account which bootstraps the directory.
func (s *UserService) Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	bootstrap := false
	if role == domain.RoleAdmin && !actor.IsAdmin() {
		// Fast path. CreateBootstrapAdmin re-checks atomically.
		count, err := s.users.Count(ctx)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if count > 0 {
			return nil, apperrors.NewForbidden(msgAdminRoleDenied)
		}
		bootstrap = true
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid password", nil)
	}

	user := &domain.User{
		Name:         name,
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         role,
	}
	create := s.users.Create
	if bootstrap {
		create = s.users.CreateBootstrapAdmin
	}
	if err := create(ctx, user); err != nil {
		return nil, mapUserError(err)
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	publish(ctx, s.events, s.logger, events.New(events.EventUserCreated, user.ID, actorOf(actor),
		events.UserChangedPayload{Email: user.Email, Role: string(user.Role)}))
	return user, nil
}

// Update applies a partial update. Users may edit themselves; only admins
// may edit others or change roles.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, input UpdateUserInput) (*domain.User, error) {
	if err := requireSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err)
	}

	if input.Name != nil {
		name, err := cleanName(*input.Name)
		if err != nil {
			return nil, err
		}
		user.Name = name
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Role != nil {
		role, err := domain.ParseRole(*input.Role)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		if role != user.Role && !actor.IsAdmin() {
			return nil, apperrors.NewForbidden(msgAdminRoleDenied)
		}
		user.Role = role
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid password", nil)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserError(err)
	}

	publish(ctx, s.events, s.logger, events.New(events.EventUserUpdated, user.ID, actorOf(actor),
		events.UserChangedPayload{Email: user.Email, Role: string(user.Role)}))
	return user, nil
}

// Delete removes a user. Admin only.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return mapUserError(err)
	}

	s.logger.Info("user deleted", zap.Int64("user_id", id), zap.Int64("actor_id", actor.ID))
	publish(ctx, s.events, s.logger, events.New(events.EventUserDeleted, id, actorOf(actor), nil))
	return nil
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(msgUserNotFound)
	case errors.Is(err, repository.ErrBootstrapClosed):
		return apperrors.NewForbidden(msgAdminRoleDenied)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.NewBadRequest("DUPLICATE_EMAIL", msgDuplicateEmail)
	default:
		return apperrors.NewInternalError(err)
	}
}
