package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

// NotificationService reacts to classified tickets.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger.Named("notifications"),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketClassified, n.handleTicketClassified)
}

func (n *NotificationService) handleTicketClassified(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketClassifiedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}

	fields := []zap.Field{
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("customer_id", payload.CustomerID),
		zap.String("category", string(payload.Category)),
		zap.String("priority", string(payload.Priority)),
		zap.Float64("sentiment_score", payload.SentimentScore),
	}
	if payload.Priority == domain.PriorityCritical {
		n.logger.Warn("critical ticket", append(fields, zap.String("summary", payload.Summary))...)
		return nil
	}
	n.logger.Info("TicketClassified", fields...)
	return nil
}
