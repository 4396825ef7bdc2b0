package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/repository"
)

// CustomerService resolves contact details to a stable customer identity.
type CustomerService struct {
	customers repository.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger.Named("customers")}
}

// Resolve finds or creates the customer for email. An empty email resolves to
// the shared sentinel customer. An existing record wins over the supplied
// name. Concurrent resolutions of the same new email yield a single row.
func (s *CustomerService) Resolve(ctx context.Context, email, name string) (int64, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" {
		email = domain.UnknownCustomerEmail
		name = domain.UnknownCustomerName
	}
	if name == "" {
		name = domain.UnknownCustomerName
	}

	existing, err := s.customers.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrCustomerNotFound) {
		return 0, err
	}

	customer := &domain.Customer{Email: email, Name: name}
	created, err := s.customers.CreateIfAbsent(ctx, customer)
	if err != nil {
		return 0, err
	}
	if created {
		s.logger.Info("customer created", zap.Int64("customer_id", customer.ID), zap.String("email", email))
		return customer.ID, nil
	}

	// Lost a race with a concurrent insert; the committed row wins.
	winner, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("re-read customer after conflict: %w", err)
	}
	return winner.ID, nil
}
