// Package section holds the per-report-section extraction engine: one
// extractor per Night Audit section, all pure functions over a normalized
// document, sharing only the field parsers.
package section

import (
	"strings"
	"time"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

// MetaField names one document-level metadata column a section wants
// stamped onto its rows. Sections that decode their own business date or
// user columns declare none.
type MetaField int

const (
	MetaProperty MetaField = iota
	MetaUser
	MetaReportDate
	MetaBusinessDate
)

// Config carries the tunable extraction heuristics. SentinelMax is the
// tax-exempt missing-data threshold: a value pair where both values are
// at or below it is treated as absent rather than a true small amount.
type Config struct {
	SentinelMax float64
}

func DefaultConfig() Config {
	return Config{SentinelMax: 1.0}
}

// Section binds one extractor to its persistence contract: target table,
// declarative column renames, columns to clean numerically, and the
// metadata fields to stamp. Extract never returns partial data on error.
type Section struct {
	Name    string
	Table   string
	Extract func(doc *domain.Document, meta domain.Metadata) (*domain.RowSet, error)
	Renames map[string]string
	Numeric []string
	Stamp   []MetaField
}

// Registry returns every known section in report order. Disabled names
// are dropped.
func Registry(cfg Config, disabled []string) []Section {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[strings.ToLower(name)] = true
	}

	all := []Section{
		arAgingSection(),
		closeoutSection(),
		inHouseSection(),
		roomStatisticsSection(),
		performanceStatisticsSection(),
		guestStatisticsSection(),
		ledgerActivitySection(),
		ledgerSummarySection(),
		noShowSection(),
		rateDiscrepancySection(),
		journalSummarySection(),
		journalDetailSection(),
		reservationActivitySection(),
		shiftReconciliationSection(),
		shiftSummarySection(),
		taxExemptByTaxSection(cfg),
		taxExemptTaxSection(cfg),
		taxExemptByTxnSection(cfg),
		taxRefundSection(cfg),
		grossRoomRevenueSection(),
		revenueByRateCodeSection(),
		advanceDepositSection(),
	}

	kept := all[:0]
	for _, s := range all {
		if !off[strings.ToLower(s.Name)] {
			kept = append(kept, s)
		}
	}
	return kept
}

// markerScanner is the shared Seeking/Collecting state machine for
// line-scan sections: collecting turns on at the start marker and off at
// any stop marker. PerPage resets the state at page boundaries.
type markerScanner struct {
	Start   string
	Stops   []string
	PerPage bool
}

func (m markerScanner) Scan(doc *domain.Document, emit func(line string)) {
	collecting := false
	for _, page := range doc.Pages {
		if m.PerPage {
			collecting = false
		}
		for _, line := range page.Lines {
			if strings.Contains(line, m.Start) {
				collecting = true
				continue
			}
			if collecting && containsAny(line, m.Stops) {
				collecting = false
				continue
			}
			if collecting {
				emit(line)
			}
		}
	}
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// sliceBetween cuts the substring starting at the first occurrence of
// start, up to (not including) the next occurrence of end. Empty end
// keeps the remainder. Returns "" when start is absent.
func sliceBetween(text, start, end string) string {
	i := strings.Index(text, start)
	if i < 0 {
		return ""
	}
	rest := text[i+len(start):]
	if end != "" {
		if j := strings.Index(rest, end); j >= 0 {
			rest = rest[:j]
		}
	}
	return strings.TrimSpace(rest)
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
