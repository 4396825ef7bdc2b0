package domain

import (
	"strings"
	"time"
)

// Sentinel identity for tickets without an extractable e-mail.
const (
	UnknownCustomerEmail = "unknown@example.com"
	UnknownCustomerName  = "Unknown Customer"
)

// Customer is keyed by e-mail; created once and never updated by the pipeline.
type Customer struct {
	ID        int64
	Email     string
	Name      string
	CreatedAt time.Time
}

// NormalizeEmail trims and lower-cases an address for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
