package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// payload mirrors the JSON the model must return. Pointers distinguish a
// missing field from a zero value.
type payload struct {
	Summary        *string  `json:"summary"`
	Category       *string  `json:"category"`
	Priority       *string  `json:"priority"`
	SentimentScore *float64 `json:"sentiment_score"`
}

// DecodeClassification parses a model response. Unknown fields, missing
// fields, trailing data and invalid values all fail closed with
// ORACLE_MALFORMED_RESPONSE.
func DecodeClassification(text string) (domain.Classification, error) {
	body := stripCodeFence(text)
	if body == "" {
		return domain.Classification{}, apperrors.NewOracleMalformed("empty response", nil)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()

	var p payload
	if err := dec.Decode(&p); err != nil {
		return domain.Classification{}, apperrors.NewOracleMalformed("invalid json", err)
	}
	if dec.More() {
		return domain.Classification{}, apperrors.NewOracleMalformed("trailing data after object", nil)
	}

	var missing []string
	if p.Summary == nil {
		missing = append(missing, "summary")
	}
	if p.Category == nil {
		missing = append(missing, "category")
	}
	if p.Priority == nil {
		missing = append(missing, "priority")
	}
	if p.SentimentScore == nil {
		missing = append(missing, "sentiment_score")
	}
	if len(missing) > 0 {
		return domain.Classification{}, apperrors.NewOracleMalformed("missing "+strings.Join(missing, ", "), nil)
	}

	result, err := domain.NewClassification(*p.Summary, *p.Category, *p.Priority, *p.SentimentScore)
	if err != nil {
		reason := "invalid field"
		switch {
		case errors.Is(err, domain.ErrEmptySummary):
			reason = "empty summary"
		case errors.Is(err, domain.ErrSentimentOutOfRange):
			reason = "sentiment out of range"
		}
		return domain.Classification{}, apperrors.NewOracleMalformed(reason, err)
	}
	return result, nil
}

// EncodeClassification is the inverse of DecodeClassification.
func EncodeClassification(c domain.Classification) (string, error) {
	summary := c.Summary()
	category := string(c.Category())
	priority := string(c.Priority())
	score := c.SentimentScore()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload{
		Summary:        &summary,
		Category:       &category,
		Priority:       &priority,
		SentimentScore: &score,
	}); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func stripCodeFence(text string) string {
	body := strings.TrimSpace(text)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
