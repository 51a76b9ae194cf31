package domain

import (
	"fmt"
	"strings"
)

type OutcomeKind int

const (
	OutcomeLoaded OutcomeKind = iota
	OutcomeEmpty
	OutcomeNotFound
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SectionOutcome is the tagged result of running one section against one
// document. Rows is meaningful only for OutcomeLoaded; Reason only for
// OutcomeFailed.
type SectionOutcome struct {
	Kind   OutcomeKind
	Rows   int
	Reason string
}

func Loaded(rows int) SectionOutcome  { return SectionOutcome{Kind: OutcomeLoaded, Rows: rows} }
func Empty() SectionOutcome           { return SectionOutcome{Kind: OutcomeEmpty} }
func NotFound() SectionOutcome        { return SectionOutcome{Kind: OutcomeNotFound} }
func Failed(err error) SectionOutcome { return SectionOutcome{Kind: OutcomeFailed, Reason: err.Error()} }
func Failedf(format string, args ...any) SectionOutcome {
	return SectionOutcome{Kind: OutcomeFailed, Reason: fmt.Sprintf(format, args...)}
}

type SectionResult struct {
	Section string
	Outcome SectionOutcome
}

type FileStatus string

const (
	StatusSuccess FileStatus = "SUCCESS"
	StatusPartial FileStatus = "PARTIAL"
	StatusFailure FileStatus = "FAILURE"
	StatusSkipped FileStatus = "SKIPPED"
)

// FileOutcome is the per-file aggregate persisted to the audit tracker.
type FileOutcome struct {
	Filename       string
	Status         FileStatus
	RowsLoaded     int
	FailedSections []string
	Err            string
}

// ErrorSummary renders the failure detail stored alongside a tracker
// row: the file-level error when the whole file failed, otherwise the
// list of sections that did.
func (o FileOutcome) ErrorSummary() string {
	if o.Err != "" {
		return o.Err
	}
	if len(o.FailedSections) > 0 {
		return "failed sections: " + strings.Join(o.FailedSections, ", ")
	}
	return ""
}

// SummarizeSections folds per-section outcomes into the file-level
// status: PARTIAL when at least one section failed, SUCCESS otherwise.
// Empty and NotFound sections never affect the status.
func SummarizeSections(filename string, results []SectionResult) FileOutcome {
	out := FileOutcome{Filename: filename, Status: StatusSuccess}
	for _, r := range results {
		switch r.Outcome.Kind {
		case OutcomeLoaded:
			out.RowsLoaded += r.Outcome.Rows
		case OutcomeFailed:
			out.FailedSections = append(out.FailedSections, r.Section)
		}
	}
	if len(out.FailedSections) > 0 {
		out.Status = StatusPartial
	}
	return out
}

// BatchSummary aggregates FileOutcomes across one fleet run.
type BatchSummary struct {
	RunID     string
	Outcomes  []FileOutcome
	Total     int
	Succeeded int
	Partial   int
	Skipped   int
	Failed    int
	Rows      int
}

func SummarizeBatch(runID string, outcomes []FileOutcome) BatchSummary {
	s := BatchSummary{RunID: runID, Outcomes: outcomes, Total: len(outcomes)}
	for _, o := range outcomes {
		s.Rows += o.RowsLoaded
		switch o.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusPartial:
			s.Partial++
		case StatusSkipped:
			s.Skipped++
		case StatusFailure:
			s.Failed++
		}
	}
	return s
}

func (s BatchSummary) FilesWithStatus(status FileStatus) []string {
	var names []string
	for _, o := range s.Outcomes {
		if o.Status == status {
			names = append(names, o.Filename)
		}
	}
	return names
}
