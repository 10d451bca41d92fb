package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	"github.com/the247care/clinic-api/pkg/logger"
	"github.com/the247care/clinic-api/pkg/messaging"
	"github.com/the247care/clinic-api/pkg/metrics"
)

const eventChannel = "clinic.events"

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	RetainFor    time.Duration
}

// OutboxProcessor polls pending outbox rows and publishes them to the broker.
// Processed rows older than RetainFor are purged once per cycle.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  log,
		metrics: m,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "failed to process outbox events")
			}
			p.cleanup(ctx)
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.GetPendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error(err, "failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}
	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryDelay):
			}
		}

		lastErr = p.broker.Publish(ctx, eventChannel, messaging.Message{
			Type:    event.EventType,
			Payload: event.Payload,
		})
		if lastErr == nil {
			p.metrics.OutboxEventsProcessed.Inc()
			return p.repo.MarkProcessed(ctx, event.ID)
		}
	}

	p.metrics.OutboxEventsFailed.Inc()
	if err := p.repo.MarkFailed(ctx, event.ID, lastErr.Error()); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return fmt.Errorf("failed to publish after %d attempts: %w", p.config.MaxRetries, lastErr)
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	if p.config.RetainFor <= 0 {
		return
	}
	deleted, err := p.repo.DeleteProcessedBefore(ctx, time.Now().Add(-p.config.RetainFor))
	if err != nil {
		p.logger.Error(err, "failed to clean up processed outbox events")
		return
	}
	if deleted > 0 {
		p.logger.Debug("purged processed outbox events", "count", deleted)
	}
}
