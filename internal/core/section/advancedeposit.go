package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	depositCodeRe = regexp.MustCompile(`Transaction Code:\s*(.+)`)
	depositRowRe  = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s+(\S+)\s+(\S+)\s+(\d+)\s+(.+?)\s+(\(?-?\d+\.?\d*\)?)$`)
)

var depositAccountTypes = map[string]bool{
	"Guest": true, "DirectBill": true, "Group": true, "Other": true,
}

// Advance Deposit Journal: one row per deposit posting between the
// journal heading and the ledger recap. The third column is either a
// room number or an account type keyword, never both.
func extractAdvanceDeposit(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"posting_date", "user_id", "room", "account_type",
		"account_number", "account_name", "total", "transaction_type",
	)

	currentType := ""
	collecting := false
	for _, page := range doc.Pages {
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if strings.Contains(line, "Advance Deposit Journal") {
				collecting = true
				continue
			}
			if strings.Contains(line, "Advance Deposit Ledger") {
				collecting = false
				continue
			}
			if !collecting {
				continue
			}
			if m := depositCodeRe.FindStringSubmatch(line); m != nil {
				currentType = strings.TrimSpace(m[1])
				continue
			}
			m := depositRowRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			var room, accountType any
			if depositAccountTypes[m[3]] {
				accountType = m[3]
			} else {
				room = m[3]
			}
			rows.Append(
				timeOrNil(parse.Date(m[1])), m[2], room, accountType,
				m[4], strings.TrimSpace(m[5]), floatOrNil(parse.Amount(m[6])),
				stringOrNil(currentType),
			)
		}
	}
	return rows, nil
}

func advanceDepositSection() Section {
	return Section{
		Name:    "Advance Deposit Journal",
		Table:   "advance_deposit_journal",
		Extract: extractAdvanceDeposit,
		Stamp:   []MetaField{MetaBusinessDate},
	}
}
