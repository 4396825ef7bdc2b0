package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/repository"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// memoryStore mimics the Postgres schema: unique e-mail, foreign key from
// tickets to customers and the sentiment check.
type memoryStore struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
	tickets   []domain.Ticket
	nextID    int64
	clock     time.Time

	// beforeCreate runs inside CreateIfAbsent before the uniqueness check,
	// letting tests inject a concurrent writer.
	beforeCreate func(email string)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		customers: map[string]domain.Customer{},
		clock:     time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[email]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

func (m *memoryStore) CreateIfAbsent(_ context.Context, customer *domain.Customer) (bool, error) {
	if m.beforeCreate != nil {
		m.beforeCreate(customer.Email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.Email]; ok {
		return false, nil
	}
	m.nextID++
	customer.ID = m.nextID
	customer.CreatedAt = m.tick()
	m.customers[customer.Email] = *customer
	return true, nil
}

func (m *memoryStore) Insert(_ context.Context, customerID int64, raw string, result domain.Classification) (int64, error) {
	if err := domain.ValidateSentiment(result.SentimentScore()); err != nil {
		return 0, apperrors.NewConstraintViolation("sentiment_score out of range", nil, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.customerByID(customerID) == nil {
		return 0, apperrors.NewConstraintViolation("customer does not exist", nil, nil)
	}
	m.nextID++
	m.tickets = append(m.tickets, domain.Ticket{
		ID:             m.nextID,
		CustomerID:     customerID,
		RawContent:     raw,
		Summary:        result.Summary(),
		Category:       result.Category(),
		Priority:       result.Priority(),
		SentimentScore: result.SentimentScore(),
		CreatedAt:      m.tick(),
	})
	return m.nextID, nil
}

func (m *memoryStore) Recent(_ context.Context, limit int, withCustomer bool) ([]domain.TicketView, error) {
	if limit <= 0 {
		limit = repository.DefaultRecentLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sorted := append([]domain.Ticket{}, m.tickets...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	views := make([]domain.TicketView, 0, len(sorted))
	for _, t := range sorted {
		view := domain.TicketView{Ticket: t}
		if c := m.customerByID(t.CustomerID); c != nil && withCustomer {
			view.CustomerName = c.Name
			view.CustomerEmail = c.Email
		}
		views = append(views, view)
	}
	return views, nil
}

func (m *memoryStore) customerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.customers)
}

func (m *memoryStore) customerByID(id int64) *domain.Customer {
	for _, c := range m.customers {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}
