package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/ports"
)

// RunBatchUseCase fans one fleet run out over the source folder with a
// bounded worker pool, then aggregates, reports and notifies.
type RunBatchUseCase struct {
	source    ports.DocumentSource
	processor *ProcessFileUseCase
	notifier  ports.Notifier
	summary   ports.SummaryWriter

	workers       int
	summaryPath   string
	notifyPerFile bool
}

func NewRunBatchUseCase(
	source ports.DocumentSource,
	processor *ProcessFileUseCase,
	notifier ports.Notifier,
	summary ports.SummaryWriter,
	workers int,
	summaryPath string,
	notifyPerFile bool,
) *RunBatchUseCase {
	if workers < 1 {
		workers = 1
	}
	return &RunBatchUseCase{
		source:        source,
		processor:     processor,
		notifier:      notifier,
		summary:       summary,
		workers:       workers,
		summaryPath:   summaryPath,
		notifyPerFile: notifyPerFile,
	}
}

// Run processes every listed file. Per-file failures never abort the
// batch; only listing failures or a canceled context do.
func (uc *RunBatchUseCase) Run(ctx context.Context) (domain.BatchSummary, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	paths, err := uc.source.List(ctx)
	if err != nil {
		return domain.BatchSummary{}, fmt.Errorf("list source files: %w", err)
	}
	log.Info("batch_started", "files", len(paths), "workers", uc.workers)

	var mu sync.Mutex
	outcomes := make([]domain.FileOutcome, 0, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.workers)
	for _, path := range paths {
		path := path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			outcome := uc.processor.ProcessFile(egCtx, runID, path)
			uc.notifyFile(egCtx, outcome)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.BatchSummary{}, err
	}

	summary := domain.SummarizeBatch(runID, outcomes)
	log.Info("batch_completed",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"partial", summary.Partial,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"rows", summary.Rows,
	)

	workbook := ""
	if uc.summary != nil && uc.summaryPath != "" {
		if err := uc.summary.WriteSummary(uc.summaryPath, summary); err != nil {
			log.Warn("summary_write_failed", "path", uc.summaryPath, "error", err)
		} else {
			workbook = uc.summaryPath
		}
	}
	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, batchSubject(), batchBody(summary, workbook)); err != nil {
			log.Warn("batch_notify_failed", "error", err)
		}
	}
	return summary, nil
}

func (uc *RunBatchUseCase) notifyFile(ctx context.Context, outcome domain.FileOutcome) {
	if !uc.notifyPerFile || uc.notifier == nil {
		return
	}
	if outcome.Status != domain.StatusPartial && outcome.Status != domain.StatusFailure {
		return
	}
	subject := fmt.Sprintf("[ETL Result] %s processed with %s", outcome.Filename, outcome.Status)
	var body strings.Builder
	fmt.Fprintf(&body, "%s finished with status %s.\n\nRows loaded: %d\n", outcome.Filename, outcome.Status, outcome.RowsLoaded)
	if len(outcome.FailedSections) > 0 {
		fmt.Fprintf(&body, "Failed sections: %s\n", strings.Join(outcome.FailedSections, ", "))
	}
	if outcome.Err != "" {
		fmt.Fprintf(&body, "Error: %s\n", outcome.Err)
	}
	if err := uc.notifier.Notify(ctx, subject, body.String()); err != nil {
		slog.Warn("file_notify_failed", "file", outcome.Filename, "error", err)
	}
}

func batchSubject() string {
	return "[ETL Summary] Night Audit ETL Completed"
}

func batchBody(s domain.BatchSummary, workbook string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Files Processed: %d\n", s.Total)
	fmt.Fprintf(&b, "Files Succeeded: %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Files Partial: %d\n", s.Partial)
	fmt.Fprintf(&b, "Files Skipped: %d\n", s.Skipped)
	fmt.Fprintf(&b, "Files Failed: %d\n", s.Failed)
	fmt.Fprintf(&b, "Total Rows Loaded: %d\n", s.Rows)

	if skipped := s.FilesWithStatus(domain.StatusSkipped); len(skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped Files:\n%s\n", strings.Join(skipped, "\n"))
	}
	if partial := s.FilesWithStatus(domain.StatusPartial); len(partial) > 0 {
		fmt.Fprintf(&b, "\nPartial Files:\n%s\n", strings.Join(partial, "\n"))
	}
	if failed := s.FilesWithStatus(domain.StatusFailure); len(failed) > 0 {
		fmt.Fprintf(&b, "\nFailed Files:\n%s\n", strings.Join(failed, "\n"))
	}
	if workbook != "" {
		fmt.Fprintf(&b, "\nSummary workbook: %s\n", workbook)
	}
	return b.String()
}
