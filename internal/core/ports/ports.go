package ports

import (
	"context"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

// DocumentReader opens one report file and normalizes it into pages of
// text lines and detected grids.
type DocumentReader interface {
	Read(ctx context.Context, path string) (*domain.Document, error)
}

// RowStore persists one section's extracted rows into its target table.
// Implementations own their retry policy; an error returned here is
// final for the section.
type RowStore interface {
	InsertRows(ctx context.Context, table string, rows *domain.RowSet, sourceFile string) error
}

// FileTracker is the idempotency and audit record for processed files.
type FileTracker interface {
	AlreadyProcessed(ctx context.Context, filename string) (bool, error)
	RecordFileStatus(ctx context.Context, runID string, outcome domain.FileOutcome) error
}

// Notifier delivers operator alerts. Implementations may be disabled
// and silently drop messages.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// DocumentSource lists candidate report files for a fleet run.
type DocumentSource interface {
	List(ctx context.Context) ([]string, error)
}

// FileQueue distributes file paths to workers.
type FileQueue interface {
	PublishFile(ctx context.Context, path string) error
	SubscribeFiles(ctx context.Context, handler func(context.Context, string) error) error
}

// SummaryWriter renders a batch summary to a report artifact.
type SummaryWriter interface {
	WriteSummary(path string, summary domain.BatchSummary) error
}
