package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketClassified EventType = "ticket_classified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketClassifiedPayload payload.
type TicketClassifiedPayload struct {
	CustomerID     int64           `json:"customer_id"`
	CustomerEmail  string          `json:"customer_email"`
	Summary        string          `json:"summary"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
}

// NewTicketClassified builds the event for a freshly persisted ticket.
func NewTicketClassified(runID string, ticketID, customerID int64, email string, result domain.Classification) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventTicketClassified,
		TicketID:  ticketID,
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Payload: TicketClassifiedPayload{
			CustomerID:     customerID,
			CustomerEmail:  email,
			Summary:        result.Summary(),
			Category:       result.Category(),
			Priority:       result.Priority(),
			SentimentScore: result.SentimentScore(),
		},
	}
}
