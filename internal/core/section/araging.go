package section

import (
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

// A/R Aging: a candidate line qualifies only when it has at least ten
// tokens, an all-digit account first, and eight strictly-numeric trailing
// amounts. The guest name is everything between.
func extractARAging(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"Account", "Guest Name", "Current", "30Days", "60Days", "90Days",
		"120Days", "Credits", "Balance", "Limit",
	)

	scanner := markerScanner{
		Start: "A/R Aging",
		Stops: []string{"Grand Total", "Advance Deposit", "Transaction Code", "Ledger", "Date/Time"},
	}
	scanner.Scan(doc, func(line string) {
		if strings.Contains(line, "Account Name") || strings.TrimSpace(line) == "" {
			return
		}
		tokens := strings.Fields(line)
		if len(tokens) < 10 {
			return
		}
		account := tokens[0]
		if !allDigits(account) {
			return
		}
		tail := tokens[len(tokens)-8:]
		for _, val := range tail {
			if !parse.StrictlyNumeric(val) {
				return
			}
		}
		guest := strings.Join(tokens[1:len(tokens)-8], " ")
		rec := []any{account, guest}
		for _, val := range tail {
			rec = append(rec, val)
		}
		rows.Append(rec...)
	})
	return rows, nil
}

func arAgingSection() Section {
	return Section{
		Name:    "A/R Aging",
		Table:   "ar_aging",
		Extract: extractARAging,
		Renames: map[string]string{
			"30days": "days_30", "60days": "days_60", "90days": "days_90",
			"120days": "days_120", "limit": "limit_amount",
		},
		Numeric: []string{"current", "days_30", "days_60", "days_90", "days_120", "credits", "balance", "limit_amount"},
		Stamp:   []MetaField{MetaProperty, MetaUser, MetaReportDate},
	}
}
