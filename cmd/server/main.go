package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"studyplan/adapters/llm"
	"studyplan/adapters/notify"
	"studyplan/adapters/postgres"
	"studyplan/app"
	"studyplan/internal"
	"studyplan/internal/clock"
	"studyplan/internal/config"
	"studyplan/ports"
	"studyplan/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	scheduleRepo := postgres.NewScheduleRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	usageRepo := postgres.NewUsageRepository(db)

	clk := clock.NewRealClock()

	var llmClient ports.LLMClient
	if cfg.AI.APIKey != "" {
		llmClient, err = llm.NewClient(llm.Config{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Timeout:     cfg.AI.Timeout,
			Temperature: cfg.AI.Temperature,
		})
		if err != nil {
			log.Fatalf("failed to create LLM client: %v", err)
		}
	} else {
		logger.Warn("OPENAI_API_KEY not set, insights served from canned responses")
		llmClient = &llm.MockLLMClient{}
	}

	schedules := app.NewScheduleService(scheduleRepo, logger)
	sessions := app.NewSessionService(clk, resultRepo, logger)
	insights := app.NewInsightService(llmClient, usageRepo, resultRepo, scheduleRepo, cfg.AI, logger)
	reports := app.NewReportService(scheduleRepo, resultRepo)

	if cfg.Reminder.Enabled {
		startReminder(cfg, scheduleRepo, resultRepo, clk, logger)
	}

	application := ui.NewApp(ui.Config{Port: cfg.Server.Port}, schedules, sessions, insights, reports, logger)
	defer sessions.Shutdown()
	log.Fatal(application.Start())
}

// startReminder wires the daily reminder for the single configured user.
func startReminder(
	cfg *config.Config,
	scheduleRepo ports.ScheduleRepository,
	resultRepo ports.ResultRepository,
	clk clock.Clock,
	logger *internal.Logger,
) {
	userID, err := uuid.Parse(os.Getenv("REMINDER_USER_ID"))
	if err != nil {
		logger.Warn("REMINDER_ENABLED set but REMINDER_USER_ID missing or invalid, reminder disabled")
		return
	}

	var notifier ports.Notifier
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, logger)
		if err != nil {
			logger.Error("telegram notifier unavailable, falling back to log: %v", err)
			notifier = notify.NewLogNotifier(logger)
		} else {
			notifier = tg
		}
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	checker := app.NewDailyGoalChecker(scheduleRepo, resultRepo, clk, userID)
	reminder, err := app.NewReminderService(clk, notifier, checker, cfg.Reminder.Hour, logger)
	if err != nil {
		logger.Error("failed to create reminder service: %v", err)
		return
	}
	reminder.Start(context.Background())
}
