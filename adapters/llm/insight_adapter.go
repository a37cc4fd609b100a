package llm

import (
	"encoding/json"
	"errors"
	"fmt"

	"studyplan/domain/insight"
	apperrors "studyplan/internal/errors"
)

// prompt templates per insight type. The usage-statistics context is appended
// as JSON so the model sees the same numbers the dashboard shows.
var insightPrompts = map[insight.Type]string{
	insight.TypeStudyTip: "Give one practical study tip for an exam candidate. " +
		"Tailor it to the usage statistics below if any are provided.",
	insight.TypeMotivate: "Write a short motivating note for a student preparing for an exam. " +
		"Reference their streak or recent effort from the statistics below when present.",
	insight.TypeAnalyzePerformance: "Analyze this student's practice performance. " +
		"Point out the trend, one strength and one weakness, using the statistics below.",
	insight.TypeSuggestTasks: "Suggest three concrete study tasks for today, sized to the " +
		"student's weekly target hours from the statistics below.",
}

// BuildPrompt renders the prompt for an insight request.
func BuildPrompt(req insight.Request) (string, error) {
	template, ok := insightPrompts[req.Type]
	if !ok {
		return "", apperrors.InvalidInput(fmt.Sprintf("unknown insight type %q", req.Type))
	}
	if req.Context == nil {
		return template + "\n\nUsage statistics: none recorded yet.", nil
	}
	ctxJSON, err := json.Marshal(req.Context)
	if err != nil {
		return "", fmt.Errorf("marshal insight context: %w", err)
	}
	return template + "\n\nUsage statistics:\n" + string(ctxJSON), nil
}

// MapUpstreamError converts transport errors to the error taxonomy the
// presentation layers rely on: 429 is rate limiting, 402 quota exhaustion,
// anything else an external service failure.
func MapUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 429:
			return apperrors.RateLimited("AI service is rate limited, try again shortly")
		case 402:
			return apperrors.QuotaExhausted("AI usage quota exhausted")
		}
	}
	return apperrors.ExternalServiceError("AI", err)
}

// EstimateTokens approximates token counts for quota accounting when the
// upstream response omits usage data. Four characters per token is the usual
// rule of thumb for English text.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text)/4 + 1
}
