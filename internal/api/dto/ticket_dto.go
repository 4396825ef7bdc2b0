package dto

import (
	"time"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// CreateTicketRequest payload. Email and name are optional; when absent they
// are extracted from the content.
type CreateTicketRequest struct {
	Content string `json:"content"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// TicketResponse is a persisted ticket with its customer.
type TicketResponse struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customer_id"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	Summary        string          `json:"summary"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProcessResponse reports a ticket that reached the persisted state.
type ProcessResponse struct {
	RunID          string          `json:"run_id"`
	TicketID       int64           `json:"ticket_id"`
	CustomerID     int64           `json:"customer_id"`
	Stage          domain.Stage    `json:"stage"`
	Summary        string          `json:"summary"`
	Category       domain.Category `json:"category"`
	Priority       domain.Priority `json:"priority"`
	SentimentScore float64         `json:"sentiment_score"`
}

// NewTicketResponse converts a stored ticket view.
func NewTicketResponse(v domain.TicketView) TicketResponse {
	return TicketResponse{
		ID:             v.ID,
		CustomerID:     v.CustomerID,
		CustomerName:   v.CustomerName,
		CustomerEmail:  v.CustomerEmail,
		Summary:        v.Summary,
		Category:       v.Category,
		Priority:       v.Priority,
		SentimentScore: v.SentimentScore,
		CreatedAt:      v.CreatedAt,
	}
}
