// cmd/jobboard/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"telegram-jobboard/internal/common/aws"
	"telegram-jobboard/internal/common/config"
	"telegram-jobboard/internal/common/database"
	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/observability"
	"telegram-jobboard/internal/common/telegram"
	"telegram-jobboard/internal/extract"
	"telegram-jobboard/internal/notify"
	"telegram-jobboard/internal/rank"
	"telegram-jobboard/internal/search"
	"telegram-jobboard/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting jobboard service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("jobboard")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (optional, resume text cache) ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unavailable, resume text caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init Elasticsearch (optional, job search) ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Warn("elasticsearch unavailable, job search disabled", zap.Error(err))
		esClient = nil
	} else {
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init notification channels ---
	tgClient := telegram.NewClient(
		cfg.Telegram.BotToken,
		time.Duration(cfg.Telegram.Timeout)*time.Millisecond,
	)

	var emailClient *aws.SESClient
	if cfg.Notifications.Email.Enabled {
		emailClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("SES client init failed, email notifications disabled", zap.Error(err))
			emailClient = nil
		}
	}

	var smsClient *aws.SNSClient
	if cfg.Notifications.SMS.Enabled {
		smsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("SNS client init failed, sms notifications disabled", zap.Error(err))
			smsClient = nil
		}
	}

	// --- Init AI scorer ---
	// A missing key or failed init is not fatal: ranking degrades to the
	// rule-based scorer.
	var oracle rank.Oracle
	geminiOracle, err := rank.NewGeminiOracle(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if err != nil {
		zapLog.Warn("Gemini client init failed, using rule-based ranking only", zap.Error(err))
	} else {
		oracle = geminiOracle
		defer geminiOracle.Close()
		zapLog.Info("Gemini client initialized", zap.String("model", cfg.AI.Model))
	}

	// --- Wire application components ---
	jobs := store.NewJobStore(pg.GetDB())
	apps := store.NewApplicationStore(pg.GetDB())
	milestones := store.NewMilestoneStore(pg.GetDB())

	var resumeCache *redis.Client
	if redisClient != nil {
		resumeCache = redisClient.GetClient()
	}
	extractor := extract.NewHTTPExtractor(&extract.Config{
		FetchTimeout:  time.Duration(cfg.Resume.FetchTimeout) * time.Millisecond,
		CacheTTL:      time.Duration(cfg.Resume.CacheTTL) * time.Second,
		MaxFetchBytes: int64(cfg.Resume.MaxFetchBytes),
	}, resumeCache, log)

	analyzer := rank.NewAnalyzer(
		&rank.Config{
			Model:              cfg.AI.Model,
			Timeout:            time.Duration(cfg.AI.Timeout) * time.Millisecond,
			ResumeTextMaxChars: cfg.AI.ResumeTextMaxChars,
		},
		oracle, extractor, log,
	)

	// Typed nils must not leak into the dispatcher's interfaces.
	var emailSender notify.EmailSender
	if emailClient != nil {
		emailSender = emailClient
	}
	var smsSender notify.SMSSender
	if smsClient != nil {
		smsSender = smsClient
	}

	dispatcher := notify.NewMultiChannelDispatcher(
		&notify.DispatcherConfig{
			EmailEnabled:          cfg.Notifications.Email.Enabled && emailClient != nil,
			FromEmail:             cfg.Notifications.Email.FromEmail,
			SMSEnabled:            cfg.Notifications.SMS.Enabled && smsClient != nil,
			SMSMilestoneThreshold: cfg.Notifications.SMS.MilestoneThreshold,
		},
		tgClient, emailSender, smsSender, log,
	)

	notifier := notify.NewNotifier(
		&notify.Config{WebAppURL: cfg.Telegram.WebAppURL},
		jobs, apps, milestones, dispatcher, log,
	)

	var jobIndex *search.JobIndex
	if esClient != nil {
		jobIndex = search.NewJobIndex(esClient.Client, cfg.Database.Elasticsearch.JobsIndex, log)
	}

	srv := newServer(cfg, log, obs, jobs, apps, milestones, notifier, analyzer, jobIndex)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Service stopped")
}
