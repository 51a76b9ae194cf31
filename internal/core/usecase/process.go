package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
	"github.com/hotelops/nightaudit-etl/internal/core/ports"
	"github.com/hotelops/nightaudit-etl/internal/core/section"
)

// ProcessFileUseCase runs every registered section over one report file
// and records the aggregate outcome. Section failures are isolated: one
// bad section degrades the file to PARTIAL without touching its
// siblings.
type ProcessFileUseCase struct {
	reader   ports.DocumentReader
	store    ports.RowStore
	tracker  ports.FileTracker
	sections []section.Section

	// OnSection, when set, observes every section outcome. Used for
	// metrics wiring at the process edge.
	OnSection func(sectionName string, outcome domain.SectionOutcome)

	// OnFileStart and OnFileDone bracket each file for the in-flight
	// gauge and duration histogram.
	OnFileStart func()
	OnFileDone  func(outcome domain.FileOutcome, duration time.Duration)
}

func NewProcessFileUseCase(
	reader ports.DocumentReader,
	store ports.RowStore,
	tracker ports.FileTracker,
	sections []section.Section,
) *ProcessFileUseCase {
	return &ProcessFileUseCase{
		reader:   reader,
		store:    store,
		tracker:  tracker,
		sections: sections,
	}
}

// ProcessFile is the per-file pipeline: idempotency gate, read,
// metadata scan, section fan-out, tracker record. It always returns a
// usable outcome; only the skipped path bypasses the tracker write.
func (uc *ProcessFileUseCase) ProcessFile(ctx context.Context, runID, path string) (outcome domain.FileOutcome) {
	filename := filepath.Base(path)
	log := slog.With("run_id", runID, "file", filename)

	started := time.Now()
	if uc.OnFileStart != nil {
		uc.OnFileStart()
	}
	defer func() {
		if uc.OnFileDone != nil {
			uc.OnFileDone(outcome, time.Since(started))
		}
	}()

	processed, err := uc.tracker.AlreadyProcessed(ctx, filename)
	if err != nil {
		// tracker outage degrades to reprocessing, never to data loss
		log.Warn("tracker_check_failed", "error", err)
		processed = false
	}
	if processed {
		log.Info("file_skipped")
		return domain.FileOutcome{Filename: filename, Status: domain.StatusSkipped}
	}

	doc, err := uc.reader.Read(ctx, path)
	if err != nil {
		log.Error("file_open_failed", "error", err)
		outcome = domain.FileOutcome{
			Filename: filename,
			Status:   domain.StatusFailure,
			Err:      fmt.Sprintf("open document: %v", err),
		}
		uc.record(ctx, runID, outcome, log)
		return outcome
	}

	meta := section.ExtractMetadata(doc)
	results := make([]domain.SectionResult, 0, len(uc.sections))
	for _, s := range uc.sections {
		start := time.Now()
		out := uc.runSection(ctx, s, doc, meta)
		results = append(results, domain.SectionResult{Section: s.Name, Outcome: out})
		if uc.OnSection != nil {
			uc.OnSection(s.Name, out)
		}
		switch out.Kind {
		case domain.OutcomeLoaded:
			log.Info("section_loaded", "section", s.Name, "rows", out.Rows, "duration_ms", time.Since(start).Milliseconds())
		case domain.OutcomeEmpty:
			log.Warn("section_empty", "section", s.Name)
		case domain.OutcomeNotFound:
			log.Warn("section_not_found", "section", s.Name)
		case domain.OutcomeFailed:
			log.Error("section_failed", "section", s.Name, "reason", out.Reason)
		}
	}

	outcome = domain.SummarizeSections(filename, results)
	uc.record(ctx, runID, outcome, log)
	log.Info("file_completed", "status", string(outcome.Status), "rows", outcome.RowsLoaded, "failed_sections", outcome.FailedSections)
	return outcome
}

func (uc *ProcessFileUseCase) record(ctx context.Context, runID string, outcome domain.FileOutcome, log *slog.Logger) {
	if err := uc.tracker.RecordFileStatus(ctx, runID, outcome); err != nil {
		log.Warn("tracker_record_failed", "error", err)
	}
}

// runSection maps one extractor run onto the uniform outcome contract.
// A panic inside an extractor is a section failure, not a process
// crash.
func (uc *ProcessFileUseCase) runSection(ctx context.Context, s section.Section, doc *domain.Document, meta domain.Metadata) (out domain.SectionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.Failedf("panic: %v", r)
		}
	}()

	rows, err := s.Extract(doc, meta)
	if err != nil {
		if domain.IsKind(err, domain.ErrSectionNotFound) {
			return domain.NotFound()
		}
		return domain.Failed(err)
	}
	if rows.Empty() {
		return domain.Empty()
	}

	for i, col := range rows.Columns {
		rows.Columns[i] = parse.NormalizeColumnName(col, s.Renames)
	}
	cleanNumericColumns(rows, s.Numeric)
	stampMetadata(rows, s.Stamp, meta)

	if err := rows.Validate(); err != nil {
		return domain.Failed(err)
	}
	if err := uc.store.InsertRows(ctx, s.Table, rows, doc.Filename); err != nil {
		return domain.Failed(err)
	}
	return domain.Loaded(rows.Len())
}

// cleanNumericColumns converts declared columns in place: string cells
// become float64 or null, cells the extractor already typed pass
// through.
func cleanNumericColumns(rows *domain.RowSet, columns []string) {
	for _, name := range columns {
		col := rows.ColumnIndex(name)
		if col < 0 {
			continue
		}
		for row := range rows.Records {
			if text, ok := rows.Cell(row, col).(string); ok {
				if v := parse.Amount(text); v != nil {
					rows.SetCell(row, col, *v)
				} else {
					rows.SetCell(row, col, nil)
				}
			}
		}
	}
}

func stampMetadata(rows *domain.RowSet, fields []section.MetaField, meta domain.Metadata) {
	for _, f := range fields {
		switch f {
		case section.MetaProperty:
			rows.AddColumn("property_code", nullableString(meta.PropertyCode))
		case section.MetaUser:
			rows.AddColumn("user", nullableString(meta.UserID))
		case section.MetaReportDate:
			rows.AddColumn("report_date", nullableTime(meta.ReportDate))
		case section.MetaBusinessDate:
			rows.AddColumn("business_date", nullableTime(meta.BusinessDate))
		}
	}
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
