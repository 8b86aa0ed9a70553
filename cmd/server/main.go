package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "inboxassist/docs" // Swagger docs
	emailapp "inboxassist/internal/application/email"
	"inboxassist/internal/application/report"
	taskapp "inboxassist/internal/application/task"
	"inboxassist/internal/infrastructure/config"
	"inboxassist/internal/infrastructure/gmail"
	"inboxassist/internal/infrastructure/llm"
	"inboxassist/internal/infrastructure/logger"
	"inboxassist/internal/infrastructure/persistence/sqlite"
	"inboxassist/internal/infrastructure/pubsub"
	"inboxassist/internal/interfaces/httpserver"
	pubsubHandler "inboxassist/internal/interfaces/pubsub"
	"inboxassist/internal/interfaces/worker"
)

// @title       InboxAssist API
// @description Rule-based inbox triage: classification, reply drafts, PDCA tasks and reports.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	l := logger.Init(logger.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	defer func() { _ = l.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, l, cfg); err != nil {
		l.Fatalf(ctx, "InboxAssist stopped: %v", err)
	}
}

func run(ctx context.Context, l logger.Logger, cfg *config.Config) error {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Warnf(ctx, "Failed to close database: %v", err)
		}
	}()

	emailRepo := sqlite.NewEmailRepository(db)
	tasks := taskapp.NewUseCase(l, sqlite.NewTaskRepository(db))
	reports := report.NewService(tasks, emailRepo)

	if cfg.Gmail.Enabled {
		stopGmail, err := startGmailPipeline(ctx, l, cfg, emailRepo, tasks)
		if err != nil {
			return err
		}
		defer stopGmail()
	} else {
		l.Info(ctx, "Gmail pipeline disabled")
	}

	if cfg.HTTPServer.Enabled {
		srv, err := httpserver.New(l, httpserver.Config{
			Port:            cfg.HTTPServer.Port,
			Mode:            cfg.HTTPServer.Mode,
			RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
			Tasks:           tasks,
			Reports:         reports,
		})
		if err != nil {
			return fmt.Errorf("create http server: %w", err)
		}
		l.Info(ctx, "InboxAssist is running. Press Ctrl+C to stop.")
		return srv.Run(ctx)
	}

	l.Info(ctx, "InboxAssist is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	l.Info(ctx, "Shutting down gracefully...")
	return nil
}

// startGmailPipeline connects Gmail, routes the initial inbox batch and
// listens for push notifications. The returned func releases everything.
func startGmailPipeline(
	ctx context.Context,
	l logger.Logger,
	cfg *config.Config,
	repo *sqlite.EmailRepository,
	tasks *taskapp.UseCase,
) (func(), error) {
	gmailService, err := gmail.NewService(ctx, l, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	gmailClient := gmail.NewClient(gmailService, l)
	if err := gmailClient.InitLabels(ctx); err != nil {
		return nil, fmt.Errorf("initialize labels: %w", err)
	}

	if err := gmailClient.EnableWatch(ctx, cfg.PubSub.TopicName); err != nil {
		l.Warnf(ctx, "Failed to enable watch: %v", err)
	}

	routeUC := emailapp.NewRouteEmailUseCase(l, repo, gmailClient)
	if cfg.Inbox.CreateTasks {
		routeUC.SetTaskOpener(tasks)
	}
	if cfg.OpenAI.PolishDrafts {
		llmClient, err := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			return nil, fmt.Errorf("create llm client: %w", err)
		}
		routeUC.SetPolisher(llmClient)
	}

	pool := worker.NewPool(l, worker.Config{
		Workers:      cfg.Worker.Count,
		RatePerSec:   cfg.Worker.RatePerSec,
		QueueSize:    cfg.Worker.QueueSize,
		DrainTimeout: cfg.Worker.DrainTimeout,
	}, routeUC)
	pool.Start(ctx)

	subscriber, err := pubsub.NewSubscriber(ctx, l, cfg.PubSub.Project, cfg.PubSub.SubscriptionID, cfg.PubSub.DedupSize)
	if err != nil {
		pool.Shutdown(ctx)
		return nil, fmt.Errorf("create subscriber: %w", err)
	}

	handler := pubsubHandler.NewHandler(l, pool, gmailClient)

	l.Infof(ctx, "Processing initial batch of %d emails...", cfg.Gmail.InitialFetch)
	if err := processInitialEmails(ctx, l, gmailClient, pool, cfg.Gmail.InitialFetch); err != nil {
		l.Warnf(ctx, "Failed to process initial emails: %v", err)
	}

	go func() {
		l.Info(ctx, "Starting Pub/Sub listener...")
		if err := subscriber.Listen(ctx, handler.HandleNotification); err != nil && ctx.Err() == nil {
			l.Errorf(ctx, "Pub/Sub listener error: %v", err)
		}
	}()

	return func() {
		pool.Shutdown(ctx)
		if err := subscriber.Close(); err != nil {
			l.Warnf(ctx, "Failed to close subscriber: %v", err)
		}
	}, nil
}

func processInitialEmails(ctx context.Context, l logger.Logger, gmailClient *gmail.Client, pool *worker.Pool, maxResults int64) error {
	messageIDs, err := gmailClient.ListMessagesFromInbox(ctx, maxResults)
	if err != nil {
		return err
	}

	l.Infof(ctx, "Found %d messages to process", len(messageIDs))

	for _, msgID := range messageIDs {
		if err := pool.Submit(ctx, worker.EmailJob{GmailID: msgID}); err != nil {
			return err
		}
	}
	return nil
}
