package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/condo-service/internal/cache"
	"github.com/spec-kit/condo-service/internal/domain"
	"github.com/spec-kit/condo-service/internal/events"
	"github.com/spec-kit/condo-service/internal/repository"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

const msgCondominioNotFound = "Condomínio não encontrado"

// CondominioService manages condominios.
type CondominioService struct {
	condos repository.CondominioRepository
	cache  cache.CondominioCache
	events events.Dispatcher
	logger *zap.Logger
}

// CondominioDependencies encapsulates collaborators for the condominio service.
type CondominioDependencies struct {
	CondominioRepo repository.CondominioRepository
	Cache          cache.CondominioCache
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewCondominioService constructs the service. A nil cache disables caching.
func NewCondominioService(deps CondominioDependencies) *CondominioService {
	c := deps.Cache
	if c == nil {
		c = cache.Noop()
	}
	return &CondominioService{
		condos: deps.CondominioRepo,
		cache:  c,
		events: deps.Dispatcher,
		logger: loggerOrNop(deps.Logger),
	}
}

// List returns every condominio.
func (s *CondominioService) List(ctx context.Context) ([]domain.Condominio, error) {
	return s.condos.List(ctx)
}

// Get fetches a condominio, consulting the cache first.
func (s *CondominioService) Get(ctx context.Context, id int64) (*domain.Condominio, error) {
	if condo, ok := s.cache.Get(ctx, id); ok {
		return condo, nil
	}
	condo, err := s.condos.GetByID(ctx, id)
	if err != nil {
		return nil, mapCondominioError(err)
	}
	s.cache.Set(ctx, condo)
	return condo, nil
}

// Create adds a condominio. Admin only.
func (s *CondominioService) Create(ctx context.Context, actor *domain.User, name string) (*domain.Condominio, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	condo := &domain.Condominio{Name: clean}
	if err := s.condos.Create(ctx, condo); err != nil {
		return nil, mapCondominioError(err)
	}
	publish(ctx, s.events, s.logger, events.New(events.EventCondominioCreated, condo.ID, actorOf(actor),
		events.CondominioChangedPayload{Name: condo.Name}))
	return condo, nil
}

// Update renames a condominio. Admin only.
func (s *CondominioService) Update(ctx context.Context, actor *domain.User, id int64, name *string) (*domain.Condominio, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	condo, err := s.condos.GetByID(ctx, id)
	if err != nil {
		return nil, mapCondominioError(err)
	}
	if name != nil {
		clean, err := cleanName(*name)
		if err != nil {
			return nil, err
		}
		condo.Name = clean
	}
	if err := s.condos.Update(ctx, condo); err != nil {
		return nil, mapCondominioError(err)
	}
	s.cache.Delete(ctx, id)
	publish(ctx, s.events, s.logger, events.New(events.EventCondominioUpdated, condo.ID, actorOf(actor),
		events.CondominioChangedPayload{Name: condo.Name}))
	return condo, nil
}

// Delete removes a condominio. Admin only.
func (s *CondominioService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.condos.Delete(ctx, id); err != nil {
		return mapCondominioError(err)
	}
	s.cache.Delete(ctx, id)
	publish(ctx, s.events, s.logger, events.New(events.EventCondominioDeleted, id, actorOf(actor), nil))
	return nil
}

func mapCondominioError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(msgCondominioNotFound)
	}
	return apperrors.NewInternalError(err)
}
