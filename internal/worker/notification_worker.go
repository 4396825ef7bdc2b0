// Package worker attaches the background consumers of pipeline events.
package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/service"
)

// NotificationWorker owns the subscribers registered on a dispatcher.
type NotificationWorker struct {
	publisher *events.KafkaPublisher
	logger    *zap.Logger
}

// StartNotificationWorker registers the notification handlers and, when
// brokers are configured, the Kafka publisher.
func StartNotificationWorker(dispatcher events.Dispatcher, cfg config.KafkaConfig, logger *zap.Logger) *NotificationWorker {
	w := &NotificationWorker{logger: logger.Named("worker")}
	if dispatcher == nil {
		return w
	}

	service.NewNotificationService(dispatcher, logger).RegisterHandlers()

	if len(cfg.Brokers) == 0 {
		w.logger.Info("KAFKA_BROKERS not provided; event publishing disabled")
		return w
	}
	w.publisher = events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)
	w.publisher.Register(dispatcher)
	w.logger.Info("publishing classified tickets",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))
	return w
}

// Publishing reports whether events leave the process.
func (w *NotificationWorker) Publishing() bool {
	return w != nil && w.publisher != nil
}

// Close flushes the publisher.
func (w *NotificationWorker) Close() {
	if !w.Publishing() {
		return
	}
	if err := w.publisher.Close(); err != nil {
		w.logger.Warn("close kafka publisher", zap.Error(err))
	}
}
