package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/resilience"
)

// Section tables are created by migrations outside this process, so the
// store only guards against malformed identifiers reaching SQL text.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// RowStore appends extracted section rows into their target tables.
// Every insert carries source_file and load_timestamp lineage columns
// and runs inside one transaction, retried as a unit.
type RowStore struct {
	db       *sql.DB
	executor *resilience.Executor
}

func NewRowStore(db *sql.DB, executor *resilience.Executor) *RowStore {
	return &RowStore{db: db, executor: executor}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (s *RowStore) InsertRows(ctx context.Context, table string, rows *domain.RowSet, sourceFile string) error {
	if rows.Empty() {
		return nil
	}
	if err := validateIdentifiers(table, rows.Columns); err != nil {
		return err
	}
	if err := rows.Validate(); err != nil {
		return err
	}

	query := buildInsertQuery(table, rows.Columns)
	call := func(ctx context.Context) error {
		return s.insertTx(ctx, query, rows, sourceFile)
	}
	if s.executor != nil {
		return s.executor.Execute(ctx, "postgres.insert_rows", call, classifyPostgresError)
	}
	return call(ctx)
}

func (s *RowStore) insertTx(ctx context.Context, query string, rows *domain.RowSet, sourceFile string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	loadedAt := time.Now().UTC()
	for _, record := range rows.Records {
		args := make([]any, 0, len(record)+2)
		args = append(args, record...)
		args = append(args, sourceFile, loadedAt)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert tx: %w", err)
	}
	return nil
}

func buildInsertQuery(table string, columns []string) string {
	quoted := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		quoted = append(quoted, `"`+c+`"`)
	}
	quoted = append(quoted, `"source_file"`, `"load_timestamp"`)

	placeholders := make([]string, len(quoted))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %q (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
	)
}

func validateIdentifiers(table string, columns []string) error {
	if !identifierRe.MatchString(table) {
		return domain.WrapError(domain.ErrInvalidInput, "insert rows", fmt.Errorf("bad table name %q", table))
	}
	for _, c := range columns {
		if !identifierRe.MatchString(c) {
			return domain.WrapError(domain.ErrInvalidInput, "insert rows", fmt.Errorf("bad column name %q in %q", c, table))
		}
	}
	return nil
}

func classifyPostgresError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrInvalidInput) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	// transient database faults dominate here, mirror the blanket
	// insert retry the audit loaders have always used
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}
