package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hotelops/nightaudit-etl/internal/bootstrap"
	"github.com/hotelops/nightaudit-etl/internal/config"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/source/folder"
	"github.com/hotelops/nightaudit-etl/internal/observability/logging"
)

func main() {
	mode := flag.String("mode", "local", "local processes files in-process, dispatch publishes them to the worker queue")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("nightaudit-etl-runner", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsSrv := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux(app),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("metrics server error: %v", err)
		}
	}()
	defer shutdownServer(metricsSrv)

	run := func() {
		switch *mode {
		case "dispatch":
			if err := dispatch(ctx, cfg, app); err != nil {
				slog.Error("dispatch_failed", "error", err)
			}
		default:
			if _, err := app.BatchUC.Run(ctx); err != nil {
				slog.Error("batch_failed", "error", err)
			}
		}
	}

	if cfg.CronSpec == "" {
		run()
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSpec, run); err != nil {
		log.Fatalf("invalid cron spec %q: %v", cfg.CronSpec, err)
	}
	slog.Info("scheduler_started", "spec", cfg.CronSpec, "mode", *mode)
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()
}

// dispatch fans report paths out to the worker fleet instead of
// processing them in this process.
func dispatch(ctx context.Context, cfg config.Config, app *bootstrap.App) error {
	paths, err := folder.New(cfg.PDFFolder, cfg.FileMarker).List(ctx)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := app.Queue.PublishFile(ctx, path); err != nil {
			return err
		}
		slog.Info("file_dispatched", "file", path)
	}
	return nil
}

func metricsMux(app *bootstrap.App) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	return mux
}

func shutdownServer(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics shutdown error: %v", err)
	}
}
