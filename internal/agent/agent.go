// Package agent wraps the external classification service. A Classifier turns
// raw ticket text into a validated domain.Classification or fails with
// ORACLE_UNAVAILABLE / ORACLE_MALFORMED_RESPONSE. Nothing is retried here.
package agent

import (
	"context"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// Classifier classifies one ticket.
type Classifier interface {
	Classify(ctx context.Context, rawText string) (domain.Classification, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, rawText string) (domain.Classification, error)

func (f ClassifierFunc) Classify(ctx context.Context, rawText string) (domain.Classification, error) {
	return f(ctx, rawText)
}
