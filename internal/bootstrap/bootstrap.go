package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/hotelops/nightaudit-etl/internal/config"
	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/section"
	"github.com/hotelops/nightaudit-etl/internal/core/usecase"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/notify/resendmail"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/pdfreader"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/queue/nats"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/report/xlsx"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/repository/postgres"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/resilience"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/source/folder"
	"github.com/hotelops/nightaudit-etl/internal/observability/metrics"
)

const serviceName = "nightaudit-etl"

type App struct {
	Config  config.Config
	Metrics *metrics.PipelineMetrics

	Queue     *nats.Queue
	Tracker   *postgres.FileTracker
	ProcessUC *usecase.ProcessFileUseCase
	BatchUC   *usecase.RunBatchUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	tracker := postgres.NewFileTracker(db)
	if err := tracker.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.InsertMaxAttempts,
		RetryInitialBackoff: time.Duration(cfg.InsertRetryDelaySeconds) * time.Second,
		RetryMaxBackoff:     time.Duration(cfg.InsertRetryDelaySeconds) * time.Second,
		RetryMultiplier:     1.0,
		BreakerEnabled:      true,
	})
	store := postgres.NewRowStore(db, executor)

	sectionsCfg, err := config.LoadSections(cfg.SectionsFile)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load sections config: %w", err)
	}
	sections := section.Registry(
		section.Config{SentinelMax: sectionsCfg.SentinelMax},
		sectionsCfg.Disabled,
	)

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init file queue: %w", err)
	}

	notifier := resendmail.New(resendmail.Config{
		APIKey:        cfg.ResendAPIKey,
		From:          cfg.MailFrom,
		To:            cfg.MailTo,
		RatePerMinute: cfg.AlertRatePerMinute,
		Executor:      executor,
	})

	pipelineMetrics := metrics.NewPipelineMetrics(serviceName)

	processUC := usecase.NewProcessFileUseCase(pdfreader.New(), store, tracker, sections)
	processUC.OnSection = func(name string, out domain.SectionOutcome) {
		pipelineMetrics.ObserveSection(serviceName, name, out)
	}
	processUC.OnFileStart = pipelineMetrics.StartFile
	processUC.OnFileDone = func(outcome domain.FileOutcome, duration time.Duration) {
		pipelineMetrics.FinishFile(serviceName, outcome, duration)
	}

	batchUC := usecase.NewRunBatchUseCase(
		folder.New(cfg.PDFFolder, cfg.FileMarker),
		processUC,
		notifier,
		xlsx.NewWriter(),
		cfg.Workers,
		cfg.SummaryWorkbook,
		cfg.NotifyPerFile,
	)

	return &App{
		Config:    cfg,
		Metrics:   pipelineMetrics,
		Queue:     queue,
		Tracker:   tracker,
		ProcessUC: processUC,
		BatchUC:   batchUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
