package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/condo-service/internal/events"
)

// AuditService writes one structured log line per domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: loggerOrNop(logger).Named("audit")}
}

// RegisterHandlers subscribes to every event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	events.SubscribeAll(a.dispatcher, a.record)
}

func (a *AuditService) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.ResourceID != 0 {
		fields = append(fields, zap.Int64("resource_id", event.ResourceID))
	}
	if event.Actor.UserID != 0 {
		fields = append(fields, zap.Int64("actor_id", event.Actor.UserID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}

	if event.Type == events.EventLoginFailed {
		a.logger.Warn(string(event.Type), fields...)
		return nil
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}
