package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

var closeoutRowRe = regexp.MustCompile(
	`^(.*?)\s+([-0-9,().]+)\s+([-0-9,().]+)\s+([-0-9,().]+)\s+([-0-9,().]+)\s+([-0-9,().]+)\s+([-0-9,().]+)$`)

// Final Transaction Closeout: a description followed by six amount
// columns, collected per page until a totals or print-time line.
func extractCloseout(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"Description", "Opening Balance", "Today's Total", "Today's Adjustments",
		"Today's Net", "PTD Totals", "YTD Totals",
	)

	scanner := markerScanner{
		Start:   "Final Transaction Closeout",
		Stops:   []string{"Date/Time of Printing", "Gross Room Revenue", "Totals:"},
		PerPage: true,
	}
	scanner.Scan(doc, func(line string) {
		m := closeoutRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			return
		}
		rows.Append(m[1], m[2], m[3], m[4], m[5], m[6], m[7])
	})
	return rows, nil
}

func closeoutSection() Section {
	return Section{
		Name:    "Transaction Closeout",
		Table:   "transaction_closeout",
		Extract: extractCloseout,
		Renames: map[string]string{"'": ""},
		Numeric: []string{"opening_balance", "todays_total", "todays_adjustments", "todays_net", "ptd_totals", "ytd_totals"},
		Stamp:   []MetaField{MetaProperty, MetaUser, MetaBusinessDate},
	}
}
