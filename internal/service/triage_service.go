package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/agent"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/repository"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// TicketInput is a received ticket with optionally extracted contact fields.
type TicketInput struct {
	Content string
	Email   string
	Name    string
}

// ProcessResult describes a ticket that reached the persisted state.
type ProcessResult struct {
	RunID          string
	TicketID       int64
	CustomerID     int64
	Classification domain.Classification
	Stage          domain.Stage
}

// StageError is a ticket in the failed state. LastStage is the last stage it
// completed. It unwraps to the originating error so the DomainError code
// stays observable.
type StageError struct {
	Stage     domain.Stage
	LastStage domain.Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ticket failed after %s: %v", e.LastStage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// TriageService runs the ingestion and classification pipeline.
type TriageService struct {
	customers  *CustomerService
	tickets    repository.TicketRepository
	classifier agent.Classifier
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Customers  *CustomerService
	TicketRepo repository.TicketRepository
	Classifier agent.Classifier
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TriageService{
		customers:  deps.Customers,
		tickets:    deps.TicketRepo,
		classifier: deps.Classifier,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger.Named("triage"),
	}
}

// Process moves one ticket through received, resolved, classified and
// persisted. The first failure stops the run; a customer created before the
// failure is kept.
func (s *TriageService) Process(ctx context.Context, input TicketInput) (*ProcessResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	stage := domain.StageReceived

	fail := func(err error) (*ProcessResult, error) {
		code := apperrors.CodeOf(err)
		s.metrics.RecordFailure(string(stage), code)
		logger.Error("ticket failed",
			zap.String("stage", string(stage)),
			zap.String("code", code),
			zap.Error(err))
		return nil, &StageError{Stage: domain.StageFailed, LastStage: stage, Err: err}
	}

	if strings.TrimSpace(input.Content) == "" {
		return fail(apperrors.NewInputEmpty("ticket content is empty"))
	}
	logger.Info("ticket received", zap.Int("bytes", len(input.Content)))

	customerID, err := s.customers.Resolve(ctx, input.Email, input.Name)
	if err != nil {
		return fail(err)
	}
	stage = domain.StageResolved
	logger.Info("customer resolved", zap.Int64("customer_id", customerID))

	result, err := s.classifier.Classify(ctx, input.Content)
	if err != nil {
		return fail(err)
	}
	stage = domain.StageClassified
	logger.Info("ticket classified",
		zap.String("category", string(result.Category())),
		zap.String("priority", string(result.Priority())),
		zap.Float64("sentiment_score", result.SentimentScore()))

	ticketID, err := s.tickets.Insert(ctx, customerID, input.Content, result)
	if err != nil {
		return fail(err)
	}
	stage = domain.StagePersisted
	logger.Info("ticket persisted", zap.Int64("ticket_id", ticketID), zap.Int64("customer_id", customerID))
	s.metrics.RecordProcessed(string(result.Category()), string(result.Priority()))

	if s.dispatcher != nil {
		event := events.NewTicketClassified(runID, ticketID, customerID, domain.NormalizeEmail(input.Email), result)
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			logger.Warn("publish ticket_classified", zap.Int64("ticket_id", ticketID), zap.Error(err))
		}
	}

	return &ProcessResult{
		RunID:          runID,
		TicketID:       ticketID,
		CustomerID:     customerID,
		Classification: result,
		Stage:          stage,
	}, nil
}

// RecentTickets returns up to limit tickets, newest first, with customer names.
func (s *TriageService) RecentTickets(ctx context.Context, limit int) ([]domain.TicketView, error) {
	return s.tickets.Recent(ctx, limit, true)
}
