package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"studyplan/adapters/llm"
	"studyplan/domain/core"
	"studyplan/domain/insight"
	"studyplan/internal"
	"studyplan/internal/config"
	apperrors "studyplan/internal/errors"
	"studyplan/ports"
)

// maxConcurrentCompletions caps in-flight upstream calls.
const maxConcurrentCompletions = 4

// InsightService proxies insight prompts to the AI completion endpoint. It
// enforces a per-user cooldown (surfaced as RATE_LIMITED) and a monthly token
// budget (QUOTA_EXHAUSTED), builds the usage-statistics context server side,
// and records token spend per call.
type InsightService struct {
	client    ports.LLMClient
	usage     ports.UsageRepository
	results   ports.ResultRepository
	schedules ports.ScheduleRepository
	cfg       config.AIConfig
	log       *internal.Logger

	sem *semaphore.Weighted

	mu          sync.Mutex
	lastRequest map[uuid.UUID]time.Time
}

// NewInsightService creates an insight service.
func NewInsightService(
	client ports.LLMClient,
	usage ports.UsageRepository,
	results ports.ResultRepository,
	schedules ports.ScheduleRepository,
	cfg config.AIConfig,
	log *internal.Logger,
) *InsightService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &InsightService{
		client:      client,
		usage:       usage,
		results:     results,
		schedules:   schedules,
		cfg:         cfg,
		log:         log,
		sem:         semaphore.NewWeighted(maxConcurrentCompletions),
		lastRequest: make(map[uuid.UUID]time.Time),
	}
}

// Generate produces one insight for the user. When the request carries no
// context, the service assembles usage statistics from the last 30 days of
// practice results and the stored schedule.
func (s *InsightService) Generate(ctx context.Context, userID uuid.UUID, req insight.Request) (*insight.Response, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NotAuthenticated()
	}
	if !req.Type.Valid() {
		return nil, apperrors.InvalidInput("unknown insight type")
	}

	if err := s.checkCooldown(userID); err != nil {
		return nil, err
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	if req.Context == nil {
		stats, err := s.buildContext(ctx, userID)
		if err != nil {
			// Insights degrade to context-free prompts rather than failing.
			s.log.Warn("failed to build insight context: %v", err)
		} else {
			req.Context = stats
		}
	}

	prompt, err := llm.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "insight request cancelled")
	}
	defer s.sem.Release(1)

	content, err := s.client.ChatCompletion(ctx, s.cfg.Model, prompt, s.cfg.MaxTokens)
	if err != nil {
		return nil, llm.MapUpstreamError(err)
	}

	s.recordUsage(userID, req.Type, prompt, content)
	s.touchCooldown(userID)

	return &insight.Response{Content: content}, nil
}

func (s *InsightService) checkCooldown(userID uuid.UUID) error {
	if s.cfg.RequestCooldown <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastRequest[userID]; ok && time.Since(last) < s.cfg.RequestCooldown {
		return apperrors.RateLimited("insight requests are rate limited, slow down")
	}
	return nil
}

func (s *InsightService) touchCooldown(userID uuid.UUID) {
	s.mu.Lock()
	s.lastRequest[userID] = time.Now()
	s.mu.Unlock()
}

func (s *InsightService) checkQuota(ctx context.Context, userID uuid.UUID) error {
	if s.cfg.MonthlyTokenBudget <= 0 || s.usage == nil {
		return nil
	}
	// Rolling one-month window, not a calendar month.
	windowStart := time.Now().AddDate(0, -1, 0)
	spent, err := s.usage.TotalTokensSince(ctx, userID, windowStart)
	if err != nil {
		return apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}
	if spent >= s.cfg.MonthlyTokenBudget {
		return apperrors.QuotaExhausted("monthly AI token budget exhausted")
	}
	return nil
}

func (s *InsightService) buildContext(ctx context.Context, userID uuid.UUID) (*insight.UsageStats, error) {
	since := time.Now().AddDate(0, 0, -30)
	results, err := s.results.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	sched, err := s.schedules.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrScheduleNotFound) {
		return nil, err
	}

	stats := insight.BuildUsageStats(results, sched, time.Now())
	return &stats, nil
}

// recordUsage persists token accounting without blocking the response path.
func (s *InsightService) recordUsage(userID uuid.UUID, insightType insight.Type, prompt, content string) {
	if s.usage == nil {
		return
	}
	record := &insight.UsageRecord{
		UserID:           userID,
		InsightType:      string(insightType),
		Model:            s.cfg.Model,
		PromptTokens:     llm.EstimateTokens(prompt),
		CompletionTokens: llm.EstimateTokens(content),
		CreatedAt:        time.Now(),
	}
	record.TotalTokens = record.PromptTokens + record.CompletionTokens

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.usage.Record(ctx, record); err != nil {
			s.log.Error("failed to record insight usage: %v", err)
		}
	}()
}
