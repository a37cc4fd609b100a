// Package insight defines AI insight requests and the usage-statistics
// context that accompanies them.
package insight

import (
	"time"

	"github.com/google/uuid"
)

// Type selects which insight the AI proxy should produce.
type Type string

const (
	TypeStudyTip           Type = "study_tip"
	TypeMotivate           Type = "motivate"
	TypeAnalyzePerformance Type = "analyze_performance"
	TypeSuggestTasks       Type = "suggest_tasks"
)

// Valid reports whether t is a known insight type.
func (t Type) Valid() bool {
	switch t {
	case TypeStudyTip, TypeMotivate, TypeAnalyzePerformance, TypeSuggestTasks:
		return true
	}
	return false
}

// Request is one insight generation request.
type Request struct {
	Type    Type        `json:"type"`
	Context *UsageStats `json:"context,omitempty"`
}

// Response carries the generated insight text.
type Response struct {
	Content string `json:"content"`
}

// UsageRecord is one persisted AI proxy call, used for quota accounting.
type UsageRecord struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	InsightType      string    `json:"insight_type" db:"insight_type"`
	Model            string    `json:"model" db:"model"`
	PromptTokens     int       `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens" db:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens" db:"total_tokens"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
