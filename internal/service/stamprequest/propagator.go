package stamprequest

import (
	"context"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"go.uber.org/zap"
)

// EventPublisher sends a JSON-encoded body under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
}

// ChangePropagator drops cached monthly stats named by an outcome and
// announces the new request status.
type ChangePropagator struct {
	cache     attendancestats.StatsCache
	publisher EventPublisher
	logger    *zap.Logger
}

func NewChangePropagator(cache attendancestats.StatsCache, publisher EventPublisher, logger *zap.Logger) *ChangePropagator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangePropagator{
		cache:     cache,
		publisher: publisher,
		logger:    logger.Named("propagator"),
	}
}

// Propagate implements stamprequest.Propagator.
func (p *ChangePropagator) Propagate(ctx context.Context, outcome stamprequest.Outcome) {
	for _, r := range outcome.Affected.Of(stamprequest.ResourceMonthlyStats) {
		if err := p.cache.Delete(ctx, r.EmployeeID, r.Period.Year(), int(r.Period.Month())); err != nil {
			p.logger.Warn("failed to invalidate monthly stats",
				zap.String("employee_id", r.EmployeeID),
				zap.String("period", r.Period.Format("2006-01")),
				zap.Error(err),
			)
		}
	}

	event := stamprequest.NewStatusChangedEvent(outcome, time.Now())
	if err := p.publisher.Publish(ctx, event.RoutingKey(), event); err != nil {
		p.logger.Warn("failed to publish stamp request event",
			zap.String("request_id", event.RequestID),
			zap.String("routing_key", event.RoutingKey()),
			zap.Error(err),
		)
	}
}

var _ stamprequest.Propagator = (*ChangePropagator)(nil)
