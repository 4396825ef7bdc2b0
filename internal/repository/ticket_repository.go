package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// DefaultRecentLimit applies when a non-positive limit is requested.
const DefaultRecentLimit = 10

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Insert(ctx context.Context, customerID int64, rawContent string, result domain.Classification) (int64, error)
	Recent(ctx context.Context, limit int, withCustomer bool) ([]domain.TicketView, error)
}

type ticketRepository struct {
	db DBTX
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(db DBTX) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Insert(ctx context.Context, customerID int64, rawContent string, result domain.Classification) (int64, error) {
	if result.IsZero() {
		return 0, apperrors.NewConstraintViolation("classification missing", nil, nil)
	}
	if err := domain.ValidateSentiment(result.SentimentScore()); err != nil {
		return 0, apperrors.NewConstraintViolation("sentiment_score out of range", map[string]any{
			"sentiment_score": result.SentimentScore(),
		}, err)
	}

	const query = `
        INSERT INTO tickets (customer_id, raw_content, summary, category, priority, sentiment_score)
        VALUES ($1, $2, $3, $4::category_enum, $5::priority_enum, $6)
        RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query,
		customerID,
		rawContent,
		result.Summary(),
		string(result.Category()),
		string(result.Priority()),
		result.SentimentScore(),
	).Scan(&id); err != nil {
		return 0, mapPgError("insert ticket", err)
	}
	return id, nil
}

func (r *ticketRepository) Recent(ctx context.Context, limit int, withCustomer bool) ([]domain.TicketView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
        SELECT t.id, t.customer_id, t.raw_content, t.summary, t.category::text, t.priority::text,
               t.sentiment_score, t.created_at, '' AS customer_name, '' AS customer_email
        FROM tickets t
        ORDER BY t.created_at DESC, t.id DESC
        LIMIT $1`
	if withCustomer {
		query = `
        SELECT t.id, t.customer_id, t.raw_content, t.summary, t.category::text, t.priority::text,
               t.sentiment_score, t.created_at, c.name, c.email
        FROM tickets t
        JOIN customers c ON c.id = t.customer_id
        ORDER BY t.created_at DESC, t.id DESC
        LIMIT $1`
	}

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapPgError("list recent tickets", err)
	}
	defer rows.Close()

	views, err := scanTicketViews(rows)
	if err != nil {
		return nil, mapPgError("list recent tickets", err)
	}
	return views, nil
}

func scanTicketViews(rows pgx.Rows) ([]domain.TicketView, error) {
	result := []domain.TicketView{}
	for rows.Next() {
		var (
			view     domain.TicketView
			category string
			priority string
		)
		if err := rows.Scan(
			&view.ID,
			&view.CustomerID,
			&view.RawContent,
			&view.Summary,
			&category,
			&priority,
			&view.SentimentScore,
			&view.CreatedAt,
			&view.CustomerName,
			&view.CustomerEmail,
		); err != nil {
			return nil, err
		}
		var err error
		if view.Category, err = domain.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("ticket %d: %w", view.ID, err)
		}
		if view.Priority, err = domain.ParsePriority(priority); err != nil {
			return nil, fmt.Errorf("ticket %d: %w", view.ID, err)
		}
		result = append(result, view)
	}
	return result, rows.Err()
}
