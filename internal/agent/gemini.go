package agent

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// contentGenerator is the slice of the genai client the agent calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAgent classifies tickets with a Gemini model.
type GeminiAgent struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewGeminiAgent builds a client authenticated with the configured API key.
func NewGeminiAgent(ctx context.Context, cfg config.OracleConfig, logger *zap.Logger, metrics *observability.Metrics) (*GeminiAgent, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewOracleUnavailable(err)
	}
	return newGeminiAgent(client.Models, cfg, logger, metrics), nil
}

func newGeminiAgent(models contentGenerator, cfg config.OracleConfig, logger *zap.Logger, metrics *observability.Metrics) *GeminiAgent {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiAgent{
		models:  models,
		model:   model,
		timeout: cfg.Timeout(),
		logger:  logger.Named("agent"),
		metrics: metrics,
	}
}

// Classify sends the ticket with the fixed instruction profile and validates the answer.
func (a *GeminiAgent) Classify(ctx context.Context, rawText string) (domain.Classification, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(userPromptPrefix+rawText), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	})
	elapsed := time.Since(started)
	a.metrics.ObserveOracle(elapsed)
	if err != nil {
		a.logger.Warn("classification call failed", zap.String("model", a.model), zap.Duration("elapsed", elapsed), zap.Error(err))
		return domain.Classification{}, apperrors.NewOracleUnavailable(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return domain.Classification{}, err
	}

	result, err := DecodeClassification(text)
	if err != nil {
		a.logger.Warn("classification response rejected", zap.String("model", a.model), zap.Error(err))
		return domain.Classification{}, err
	}

	a.logger.Debug("ticket classified",
		zap.String("model", a.model),
		zap.Duration("elapsed", elapsed),
		zap.String("category", string(result.Category())),
		zap.String("priority", string(result.Priority())))
	return result, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		reason := "no candidates"
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
		}
		return "", apperrors.NewOracleMalformed(reason, nil)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", apperrors.NewOracleMalformed("empty candidate, finish reason "+string(candidate.FinishReason), nil)
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
