package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var journalAmountRe = regexp.MustCompile(`(\(?-?\$?\d{1,3}(?:,\d{3})*(?:\.\d{2})?\)?)\s+0\.00$`)

var journalSkipKeywords = []string{
	"Posting Date", "Account Type", "Total For", "Grand Total",
	"Subtotal", "Date Range", "Software Version",
}

// Hotel Journal Detail: the active transaction code is set by
// "Transaction Code:" lines and persists until reassigned. A data line
// must end with an amount followed by a literal "0.00"; the remaining
// tokens are positionally decoded, with two-word account types
// special-cased.
func extractJournalDetail(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"transaction_code", "date", "posting_date", "time", "am_pm", "user_id",
		"shift_id", "room", "account_type", "account_number", "guest_name", "amount",
	)

	currentCode := ""
	for _, page := range doc.Pages {
		collecting := false
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if strings.Contains(line, "Hotel Journal Detail") {
				collecting = true
				continue
			}
			if collecting && containsAny(line, []string{"Hotel Journal Summary", "Date/Time of Printing", "Totals:", "Software Version"}) {
				collecting = false
				continue
			}
			if strings.HasPrefix(line, "Transaction Code:") {
				currentCode = strings.TrimSpace(strings.TrimPrefix(line, "Transaction Code:"))
				continue
			}
			if !collecting || currentCode == "" {
				continue
			}
			if containsAny(line, journalSkipKeywords) {
				continue
			}

			m := journalAmountRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			amount := parse.Amount(m[1])
			if amount == nil {
				continue
			}
			cleaned := strings.TrimSpace(strings.Replace(line, m[0], "", 1))
			tokens := strings.Fields(cleaned)
			if len(tokens) < 8 {
				continue
			}

			date, postingDate, clock, amPM, userID := tokens[0], tokens[1], tokens[2], tokens[3], tokens[4]

			var shiftID, room any
			shiftCandidate := tokens[5]
			hasShift := allDigits(shiftCandidate) && len(shiftCandidate) <= 2
			if hasShift {
				shiftID = shiftCandidate
			}
			roomCandidate := tokens[5]
			if hasShift {
				roomCandidate = tokens[6]
			}
			if allDigits(roomCandidate) {
				room = roomCandidate
			}

			accIdx := 6
			if hasShift {
				accIdx = 7
			}
			if accIdx >= len(tokens) {
				continue
			}

			var accountType string
			var accountNumber any
			var guest string
			twoWord := ""
			if accIdx+1 < len(tokens) {
				twoWord = strings.ToLower(tokens[accIdx] + " " + tokens[accIdx+1])
			}
			if twoWord == "guest account" || twoWord == "directbill account" {
				accountType = tokens[accIdx] + " " + tokens[accIdx+1]
				guest = strings.Join(tokens[accIdx+2:], " ")
			} else {
				accountType = tokens[accIdx]
				if accIdx+1 < len(tokens) && allDigits(tokens[accIdx+1]) {
					accountNumber = tokens[accIdx+1]
					guest = strings.Join(tokens[accIdx+2:], " ")
				} else {
					guest = strings.Join(tokens[accIdx+1:], " ")
				}
			}
			guest = strings.TrimSpace(strings.ReplaceAll(guest, "Guest Account", ""))

			rows.Append(
				currentCode, timeOrNil(parse.Date(date)), timeOrNil(parse.Date(postingDate)),
				clock, amPM, userID, shiftID, room, accountType, accountNumber, guest, *amount,
			)
		}
	}
	return rows, nil
}

// Column mapping for the Hotel Journal Summary grid; format drift in the
// report generator means touching this table, not the parsing below.
var journalSummaryColumns = []string{
	"description", "postings", "corrections", "adjustments",
	"totals", "transactions", "post_count", "corr_count", "adj_count",
}

var journalSummaryKeywords = []string{
	"Cash (CA)", "Direct Bill (DB)", "Room Charge (RM)", "Visa Payment (VI)", "Master Card (MC)",
}

// Hotel Journal Summary: grid-based. The owning grid is identified by its
// title plus at least three of the known payment-description cells; the
// first three rows are title/header furniture.
func extractJournalSummary(doc *domain.Document, meta domain.Metadata) (*domain.RowSet, error) {
	for _, grid := range doc.Grids() {
		flat := grid.FlatText()
		if !strings.Contains(flat, "Hotel Journal Summary") {
			continue
		}
		hits := 0
		for _, k := range journalSummaryKeywords {
			if strings.Contains(flat, k) {
				hits++
			}
		}
		if hits < 3 {
			continue
		}

		rows := domain.NewRowSet(append(append([]string{}, journalSummaryColumns...), "business_date")...)
		for ri, gridRow := range grid {
			if ri < 3 {
				continue
			}
			rec := make([]any, len(journalSummaryColumns)+1)
			for ci := range journalSummaryColumns {
				var cell string
				if ci < len(gridRow) {
					cell = strings.TrimSpace(gridRow[ci])
				}
				if ci == 0 {
					rec[ci] = cell
				} else {
					rec[ci] = floatOrNil(parse.Amount(cell))
				}
			}
			rec[len(rec)-1] = timeOrNil(meta.BusinessDate)
			rows.Append(rec...)
		}
		return rows, nil
	}
	return nil, domain.ErrSectionNotFound
}

func journalDetailSection() Section {
	return Section{
		Name:    "Hotel Journal Detail",
		Table:   "hotel_journal_detail",
		Extract: extractJournalDetail,
	}
}

func journalSummarySection() Section {
	return Section{
		Name:    "Hotel Journal Summary",
		Table:   "hotel_journal_summary",
		Extract: extractJournalSummary,
	}
}
