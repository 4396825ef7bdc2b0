package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentiment bounds: 0 is maximally negative, 1 maximally positive.
const (
	MinSentiment = 0.0
	MaxSentiment = 1.0
)

var (
	ErrEmptySummary        = errors.New("summary is empty")
	ErrSentimentOutOfRange = errors.New("sentiment score outside [0, 1]")
)

// Classification is a validated oracle result. The zero value is not valid;
// build one with NewClassification.
type Classification struct {
	summary   string
	category  Category
	priority  Priority
	sentiment float64
}

// NewClassification validates every field and returns the value object.
func NewClassification(summary, category, priority string, sentiment float64) (Classification, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return Classification{}, ErrEmptySummary
	}
	c, err := ParseCategory(category)
	if err != nil {
		return Classification{}, err
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return Classification{}, err
	}
	if err := ValidateSentiment(sentiment); err != nil {
		return Classification{}, err
	}
	return Classification{summary: summary, category: c, priority: p, sentiment: sentiment}, nil
}

// ValidateSentiment rejects NaN and anything outside the closed unit interval.
func ValidateSentiment(score float64) error {
	if math.IsNaN(score) || score < MinSentiment || score > MaxSentiment {
		return fmt.Errorf("%w: %v", ErrSentimentOutOfRange, score)
	}
	return nil
}

func (c Classification) Summary() string         { return c.summary }
func (c Classification) Category() Category      { return c.category }
func (c Classification) Priority() Priority      { return c.priority }
func (c Classification) SentimentScore() float64 { return c.sentiment }

// IsZero reports whether c was never constructed.
func (c Classification) IsZero() bool {
	return c == Classification{}
}
