package domain

import (
	"fmt"
	"time"
)

// Category enumerates the fixed ticket categories.
type Category string

const (
	CategoryBilling        Category = "billing"
	CategoryTechnical      Category = "technical"
	CategoryFeatureRequest Category = "feature_request"
	CategoryGeneral        Category = "general"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTechnical, CategoryFeatureRequest, CategoryGeneral}
}

// ParseCategory accepts only the exact lower-case names of the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Priority enumerates ticket urgency, ordered low < medium < high < critical.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities returns every priority from least to most urgent.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// ParsePriority accepts only the exact lower-case names of the closed set.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Rank returns 0 for low through 3 for critical, -1 for values outside the set.
func (p Priority) Rank() int {
	for i, candidate := range Priorities() {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Less reports whether p is less urgent than other.
func (p Priority) Less(other Priority) bool {
	return p.Rank() < other.Rank()
}

// Ticket is a persisted, classified support request. Immutable once stored.
type Ticket struct {
	ID             int64
	CustomerID     int64
	RawContent     string
	Summary        string
	Category       Category
	Priority       Priority
	SentimentScore float64
	CreatedAt      time.Time
}

// Classification returns the classification fields flattened into the ticket.
func (t Ticket) Classification() Classification {
	return Classification{
		summary:   t.Summary,
		category:  t.Category,
		priority:  t.Priority,
		sentiment: t.SentimentScore,
	}
}

// TicketView is the read shape used by the presentation layer.
type TicketView struct {
	Ticket
	CustomerName  string
	CustomerEmail string
}
