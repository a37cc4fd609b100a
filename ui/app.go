// Package ui exposes the study-planning application over HTTP: schedule CRUD,
// practice-session timers, AI insights and the progress report download.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"studyplan/app"
	"studyplan/internal"
)

// App represents the UI application
type App struct {
	router    *chi.Mux
	schedules *app.ScheduleService
	sessions  *app.SessionService
	insights  *app.InsightService
	reports   *app.ReportService
	log       *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates a new UI application
func NewApp(
	config Config,
	schedules *app.ScheduleService,
	sessions *app.SessionService,
	insights *app.InsightService,
	reports *app.ReportService,
	log *internal.Logger,
) *App {
	if log == nil {
		log = internal.DefaultLogger
	}
	a := &App{
		router:    chi.NewRouter(),
		schedules: schedules,
		sessions:  sessions,
		insights:  insights,
		reports:   reports,
		log:       log,
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	// Weekly schedule
	a.router.Get("/api/schedule", a.handleGetSchedule)
	a.router.Put("/api/schedule", a.handleSaveSchedule)
	a.router.Put("/api/schedule/blocked-dates", a.handleSetBlockedDates)
	a.router.Post("/api/schedule/blocked-dates", a.handleAddBlockedDate)
	a.router.Delete("/api/schedule/blocked-dates/{date}", a.handleRemoveBlockedDate)

	// Practice sessions
	a.router.Post("/api/sessions", a.handleStartSession)
	a.router.Get("/api/sessions/{id}", a.handleSessionState)
	a.router.Post("/api/sessions/{id}/toggle", a.handleToggleSession)
	a.router.Post("/api/sessions/{id}/finish", a.handleFinishSession)
	a.router.Delete("/api/sessions/{id}", a.handleAbandonSession)

	// AI insights and reporting
	a.router.Post("/api/insights", a.handleInsight)
	a.router.Get("/api/report.xlsx", a.handleReport)
}

// Router returns the HTTP handler, mostly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%s", a.port)
	a.log.Info("study plan app listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
