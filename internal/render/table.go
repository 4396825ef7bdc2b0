// Package render draws ticket listings for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

const (
	marker        = "▶"
	maxSummary    = 60
	timeLayout    = "2006-01-02 15:04:05"
	noTicketsLine = "No tickets found."
)

var headers = []string{"", "ID", "CUSTOMER", "CATEGORY", "PRIORITY", "SENTIMENT", "SUMMARY", "CREATED"}

const (
	colMarker = iota
	colID
	colCustomer
	colCategory
	colPriority
	colSentiment
	colSummary
	colCreated
)

var priorityColors = map[domain.Priority]lipgloss.Color{
	domain.PriorityCritical: lipgloss.Color("196"),
	domain.PriorityHigh:     lipgloss.Color("208"),
	domain.PriorityMedium:   lipgloss.Color("33"),
	domain.PriorityLow:      lipgloss.Color("245"),
}

// SentimentColor maps a score to red below 0.3, yellow below 0.7 and green otherwise.
func SentimentColor(score float64) lipgloss.Color {
	switch {
	case score < 0.3:
		return lipgloss.Color("196")
	case score < 0.7:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("40")
	}
}

// PriorityColor returns the display color for p.
func PriorityColor(p domain.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return lipgloss.Color("245")
}

// TicketTable writes tickets as a bordered table. The row whose ID equals
// highlightID carries a marker and a background; pass 0 for none. Colors
// are dropped automatically when w is not a terminal.
func TicketTable(w io.Writer, tickets []domain.TicketView, highlightID int64) error {
	r := lipgloss.NewRenderer(w)
	if len(tickets) == 0 {
		_, err := fmt.Fprintln(w, r.NewStyle().Faint(true).Render(noTicketsLine))
		return err
	}

	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		mark := ""
		if highlightID != 0 && t.ID == highlightID {
			mark = marker
		}
		rows = append(rows, []string{
			mark,
			strconv.FormatInt(t.ID, 10),
			customerLabel(t),
			string(t.Category),
			strings.ToUpper(string(t.Priority)),
			strconv.FormatFloat(t.SentimentScore, 'f', 2, 64),
			truncate(t.Summary, maxSummary),
			t.CreatedAt.Local().Format(timeLayout),
		})
	}

	base := r.NewStyle().Padding(0, 1)
	header := base.Bold(true).Foreground(lipgloss.Color("252"))
	highlight := lipgloss.Color("236")

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if row < 0 || row >= len(tickets) {
				return base
			}
			t := tickets[row]
			style := base
			if highlightID != 0 && t.ID == highlightID {
				style = style.Background(highlight).Bold(true)
			}
			switch col {
			case colPriority:
				style = style.Foreground(PriorityColor(t.Priority)).Bold(true)
			case colSentiment:
				style = style.Foreground(SentimentColor(t.SentimentScore))
			case colMarker:
				style = style.Foreground(lipgloss.Color("51"))
			}
			return style
		})

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

func customerLabel(t domain.TicketView) string {
	if t.CustomerName != "" {
		return t.CustomerName
	}
	if t.CustomerEmail != "" {
		return t.CustomerEmail
	}
	return "#" + strconv.FormatInt(t.CustomerID, 10)
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
