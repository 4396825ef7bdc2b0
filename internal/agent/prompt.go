package agent

import (
	"google.golang.org/genai"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

const systemInstruction = `You are an expert customer support ticket analyzer.

For every ticket, extract:

1. summary: one or two sentences describing the main issue or request.

2. category, exactly one of:
   - billing: payments, charges, refunds, subscriptions
   - technical: bugs, errors, outages, login or system problems
   - feature_request: requests for new features or improvements
   - general: questions, feedback and anything else

3. priority, exactly one of:
   - low: minor issues, questions, general feedback
   - medium: important but not urgent, a workaround exists
   - high: significant impact on the customer's experience
   - critical: blocking or revenue-impacting, needs immediate attention

4. sentiment_score: emotional tone from 0.0 (very negative, angry, frustrated)
   to 1.0 (very positive, happy, satisfied). Weigh word choice, politeness,
   exclamation marks, capitalization and overall context.

Respond with a single JSON object containing exactly these four fields.`

const userPromptPrefix = "Analyze this customer support ticket:\n\n"

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// responseSchema constrains the model to the classification shape.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "Concise 1-2 sentence summary of the ticket",
			},
			"category": {
				Type: genai.TypeString,
				Enum: enumValues(domain.Categories()),
			},
			"priority": {
				Type: genai.TypeString,
				Enum: enumValues(domain.Priorities()),
			},
			"sentiment_score": {
				Type:    genai.TypeNumber,
				Minimum: genai.Ptr(domain.MinSentiment),
				Maximum: genai.Ptr(domain.MaxSentiment),
			},
		},
		Required:         []string{"summary", "category", "priority", "sentiment_score"},
		PropertyOrdering: []string{"summary", "category", "priority", "sentiment_score"},
	}
}
