package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/intake"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

const maxRecentLimit = 100

// TicketProcessor is the part of the triage service the handler needs.
type TicketProcessor interface {
	Process(ctx context.Context, input service.TicketInput) (*service.ProcessResult, error)
	RecentTickets(ctx context.Context, limit int) ([]domain.TicketView, error)
}

// TicketsHandler exposes ticket intake and listing.
type TicketsHandler struct {
	service      TicketProcessor
	defaultLimit int
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(svc TicketProcessor, defaultLimit int) *TicketsHandler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &TicketsHandler{service: svc, defaultLimit: defaultLimit}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewInputEmpty("content required")
	}

	contact := intake.ExtractContact(req.Content)
	input := service.TicketInput{Content: req.Content, Email: req.Email, Name: req.Name}
	if input.Email == "" {
		input.Email = contact.Email
	}
	if input.Name == "" {
		input.Name = contact.Name
	}

	res, err := h.service.Process(c.UserContext(), input)
	if err != nil {
		return withStage(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.ProcessResponse{
		RunID:          res.RunID,
		TicketID:       res.TicketID,
		CustomerID:     res.CustomerID,
		Stage:          res.Stage,
		Summary:        res.Classification.Summary(),
		Category:       res.Classification.Category(),
		Priority:       res.Classification.Priority(),
		SentimentScore: res.Classification.SentimentScore(),
	}})
}

// RecentTickets GET /tickets/recent.
func (h *TicketsHandler) RecentTickets(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.defaultLimit)
	if limit <= 0 || limit > maxRecentLimit {
		return apperrors.NewValidationError("limit must be between 1 and 100", map[string]any{"limit": c.Query("limit")})
	}
	views, err := h.service.RecentTickets(c.UserContext(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.NewTicketResponse(v))
	}
	return c.JSON(fiber.Map{"data": items})
}

// withStage copies the pipeline state into the error details.
func withStage(err error) error {
	var stageErr *service.StageError
	if !errors.As(err, &stageErr) {
		return err
	}
	de := apperrors.ToDomainError(err)
	details := map[string]any{"stage": string(stageErr.Stage), "last_stage": string(stageErr.LastStage)}
	for k, v := range de.Details {
		details[k] = v
	}
	return &apperrors.DomainError{
		Code:       de.Code,
		Message:    de.Message,
		HTTPStatus: de.HTTPStatus,
		Details:    details,
		Err:        err,
	}
}
