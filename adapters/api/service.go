// Package api exposes the AI insight proxy as its own HTTP surface, the Go
// rendition of the original serverless function: it holds the upstream API
// key and forwards typed prompts, nothing more.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyplan/adapters/llm"
	"studyplan/domain/insight"
	"studyplan/internal"
	apperrors "studyplan/internal/errors"
	"studyplan/ports"
)

// InsightProxy is the thin completion proxy service.
type InsightProxy struct {
	router    *gin.Engine
	client    ports.LLMClient
	model     string
	maxTokens int
	log       *internal.Logger
}

// ProxyConfig holds insight proxy settings.
type ProxyConfig struct {
	Model     string
	MaxTokens int
	GinMode   string
}

// NewInsightProxy creates the proxy with its routes registered.
func NewInsightProxy(client ports.LLMClient, cfg ProxyConfig, log *internal.Logger) *InsightProxy {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	p := &InsightProxy{
		router:    gin.Default(),
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       log,
	}
	p.router.GET("/healthz", p.handleHealth)
	p.router.POST("/v1/insights", p.handleInsight)
	return p
}

// Run starts the proxy server on addr.
func (p *InsightProxy) Run(addr string) error {
	p.log.Info("insight proxy listening on %s", addr)
	return p.router.Run(addr)
}

// Handler returns the underlying HTTP handler, mostly for tests.
func (p *InsightProxy) Handler() http.Handler {
	return p.router
}

func (p *InsightProxy) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (p *InsightProxy) handleInsight(c *gin.Context) {
	var req insight.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown insight type"})
		return
	}

	prompt, err := llm.BuildPrompt(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := p.client.ChatCompletion(c.Request.Context(), p.model, prompt, p.maxTokens)
	if err != nil {
		mapped := llm.MapUpstreamError(err)
		status := http.StatusBadGateway
		switch apperrors.GetCode(mapped) {
		case apperrors.CodeRateLimited:
			status = http.StatusTooManyRequests
		case apperrors.CodeQuotaExhausted:
			status = http.StatusPaymentRequired
		}
		p.log.Error("insight proxy upstream failure: %v", err)
		c.JSON(status, gin.H{"error": mapped.Error()})
		return
	}

	c.JSON(http.StatusOK, insight.Response{Content: content})
}
