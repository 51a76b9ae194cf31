package section

import (
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

func shiftBusinessDate(doc *domain.Document) any {
	for _, page := range doc.Pages {
		for _, line := range page.Lines {
			if i := strings.Index(line, "Business Date:"); i >= 0 {
				fields := strings.Fields(line[i+len("Business Date:"):])
				if len(fields) > 0 {
					return timeOrNil(parse.Date(fields[0]))
				}
			}
		}
	}
	return nil
}

// Shift Reconciliation Closeout: one cash line per shift. A data line
// carries "Cash (CA)" plus at least one parenthesis and opens with the
// numeric shift id.
func extractShiftReconciliation(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	bd := shiftBusinessDate(doc)
	rows := domain.NewRowSet("business_date", "shift_id", "description", "total")

	collecting := false
	for _, page := range doc.Pages {
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if strings.Contains(line, "Shift Reconciliation Closeout") {
				collecting = true
				continue
			}
			if !collecting {
				continue
			}
			if strings.Contains(line, "Grand Total") {
				collecting = false
				continue
			}
			if !strings.Contains(line, "Cash (CA)") || !strings.Contains(line, "(") {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 3 || !allDigits(parts[0]) {
				continue
			}
			rows.Append(bd, parts[0], parts[1]+" "+parts[2], floatOrNil(parse.Amount(parts[len(parts)-1])))
		}
	}
	return rows, nil
}

// Summary by User Id / Shift Id: fixed six column layout per shift,
// keyed by a leading digit.
func extractShiftSummary(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	bd := shiftBusinessDate(doc)
	rows := domain.NewRowSet(
		"business_date", "shift_id", "user_id",
		"beginning_bank", "closing_bank", "over_short", "auto_close",
	)

	collecting := false
	for _, page := range doc.Pages {
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if strings.Contains(line, "Summary by User Id / Shift Id") {
				collecting = true
				continue
			}
			if !collecting {
				continue
			}
			if strings.Contains(line, "Date/Time of Printing") {
				collecting = false
				continue
			}
			if line == "" || line[0] < '0' || line[0] > '9' {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 6 {
				continue
			}
			rows.Append(
				bd, parts[0], parts[1],
				floatOrNil(parse.Amount(parts[2])), floatOrNil(parse.Amount(parts[3])),
				floatOrNil(parse.Amount(parts[4])), parts[5],
			)
		}
	}
	return rows, nil
}

func shiftReconciliationSection() Section {
	return Section{
		Name:    "Shift Reconciliation",
		Table:   "shift_reconciliation",
		Extract: extractShiftReconciliation,
	}
}

func shiftSummarySection() Section {
	return Section{
		Name:    "Shift Summary",
		Table:   "shift_summary",
		Extract: extractShiftSummary,
	}
}
