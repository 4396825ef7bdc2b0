package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

func TestWorkerWithoutBrokersOnlyNotifies(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	w := StartNotificationWorker(dispatcher, config.KafkaConfig{Topic: "tickets.classified"}, zap.New(core))
	defer w.Close()
	assert.False(t, w.Publishing())

	result, err := domain.NewClassification("Outage", "technical", "high", 0.2)
	require.NoError(t, err)
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewTicketClassified("run", 5, 1, "a@x.com", result)))

	assert.Equal(t, 1, logs.FilterMessage("TicketClassified").Len())
}

func TestWorkerWithBrokersRegistersPublisher(t *testing.T) {
	w := StartNotificationWorker(events.NewInMemoryDispatcher(), config.KafkaConfig{
		Brokers: []string{"127.0.0.1:9092"},
		Topic:   "tickets.classified",
	}, zap.NewNop())
	assert.True(t, w.Publishing())
	w.Close()
}

func TestWorkerNilDispatcher(t *testing.T) {
	w := StartNotificationWorker(nil, config.KafkaConfig{Brokers: []string{"k:9092"}}, zap.NewNop())
	assert.False(t, w.Publishing())
	w.Close()
}
