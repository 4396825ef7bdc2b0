package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

func view(id int64, name string, p domain.Priority, sentiment float64, summary string) domain.TicketView {
	return domain.TicketView{
		Ticket: domain.Ticket{
			ID:             id,
			CustomerID:     1,
			Summary:        summary,
			Category:       domain.CategoryBilling,
			Priority:       p,
			SentimentScore: sentiment,
			CreatedAt:      time.Date(2026, 10, 15, 9, 0, int(id), 0, time.UTC),
		},
		CustomerName: name,
	}
}

func TestTicketTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TicketTable(&buf, nil, 0))
	assert.Equal(t, noTicketsLine+"\n", buf.String())
}

func TestTicketTableRowsAndMarker(t *testing.T) {
	tickets := []domain.TicketView{
		view(7, "Sarah Johnson", domain.PriorityCritical, 0.1, "Customer double-charged"),
		view(6, "Mike Chen", domain.PriorityHigh, 0.35, "Cannot log in"),
	}

	var buf bytes.Buffer
	require.NoError(t, TicketTable(&buf, tickets, 7))
	out := buf.String()

	for _, want := range []string{"CUSTOMER", "Sarah Johnson", "Mike Chen", "CRITICAL", "HIGH", "0.10", "0.35", "Customer double-charged"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, marker))

	lines := strings.Split(out, "\n")
	var markedLine string
	for _, l := range lines {
		if strings.Contains(l, marker) {
			markedLine = l
		}
	}
	assert.Contains(t, markedLine, "Sarah Johnson")
}

func TestTicketTableNoHighlight(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TicketTable(&buf, []domain.TicketView{view(1, "", domain.PriorityLow, 0.9, "Thanks")}, 0))
	assert.NotContains(t, buf.String(), marker)
	assert.Contains(t, buf.String(), "#1")
}

func TestColorThresholds(t *testing.T) {
	assert.Equal(t, lipgloss.Color("196"), SentimentColor(0))
	assert.Equal(t, lipgloss.Color("196"), SentimentColor(0.29))
	assert.Equal(t, lipgloss.Color("220"), SentimentColor(0.3))
	assert.Equal(t, lipgloss.Color("220"), SentimentColor(0.69))
	assert.Equal(t, lipgloss.Color("40"), SentimentColor(0.7))
	assert.Equal(t, lipgloss.Color("40"), SentimentColor(1))

	assert.Equal(t, lipgloss.Color("196"), PriorityColor(domain.PriorityCritical))
	assert.Equal(t, lipgloss.Color("208"), PriorityColor(domain.PriorityHigh))
	assert.Equal(t, lipgloss.Color("33"), PriorityColor(domain.PriorityMedium))
	assert.Equal(t, lipgloss.Color("245"), PriorityColor(domain.PriorityLow))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
