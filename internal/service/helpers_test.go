package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/condo-service/internal/config"
	"github.com/spec-kit/condo-service/internal/domain"
	"github.com/spec-kit/condo-service/internal/events"
	"github.com/spec-kit/condo-service/internal/repository"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

type serviceFixture struct {
	users      *repository.MemoryUserRepository
	dispatcher events.Dispatcher
	auth       *AuthService
	svc        *UserService
	published  []events.Event
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		users:      repository.NewMemoryUserRepository(),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	for _, et := range events.AllEventTypes {
		f.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}

	authSvc, err := NewAuthService(config.AuthConfig{
		JWTSecret:             "service-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}, AuthDependencies{UserRepo: f.users, Dispatcher: f.dispatcher})
	require.NoError(t, err)
	f.auth = authSvc
	f.svc = NewUserService(UserDependencies{UserRepo: f.users, Hasher: authSvc.Hasher(), Dispatcher: f.dispatcher})
	return f
}

func (f *serviceFixture) create(t *testing.T, actor *domain.User, name, email, password, role string) *domain.User {
	t.Helper()
	user, err := f.svc.Create(context.Background(), actor, CreateUserInput{Name: name, Email: email, Password: password, Role: role})
	require.NoError(t, err)
	return user
}

func (f *serviceFixture) lastEvent() events.Event {
	if len(f.published) == 0 {
		return events.Event{}
	}
	return f.published[len(f.published)-1]
}

func statusOf(err error) int {
	de := apperrors.ToDomainError(err)
	if de == nil {
		return 0
	}
	return de.HTTPStatus
}

func strPtr(s string) *string { return &s }
