package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// ErrCustomerNotFound is returned by GetByEmail when no row matches.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines persistence access for customers.
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	// CreateIfAbsent inserts the customer unless the e-mail is already on file.
	// created is false when another row already held the e-mail.
	CreateIfAbsent(ctx context.Context, customer *domain.Customer) (created bool, err error)
}

type customerRepository struct {
	db DBTX
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(db DBTX) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const query = `
        SELECT id, email, name, created_at
        FROM customers WHERE email=$1`

	var customer domain.Customer
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, mapPgError("get customer", err)
	}
	return &customer, nil
}

func (r *customerRepository) CreateIfAbsent(ctx context.Context, customer *domain.Customer) (bool, error) {
	const query = `
        INSERT INTO customers (email, name)
        VALUES ($1, $2)
        ON CONFLICT (email) DO NOTHING
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, customer.Email, customer.Name).Scan(&customer.ID, &customer.CreatedAt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pgx.ErrNoRows), isUniqueViolation(err):
		return false, nil
	default:
		return false, mapPgError("create customer", err)
	}
}
