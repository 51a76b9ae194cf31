package section

import (
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

// ledgerEntry is the sub-entity accumulator threaded through the line
// fold: reassigned whenever a line names a new ledger type.
type ledgerEntry struct {
	ledgerType     string
	openingBalance *float64
	credits        *float64
	adjustments    *float64
	debits         *float64
	transfers      *float64
	balanceForward *float64
}

// Ledger Activity Report: slice from its marker to "Ledger Summary", then
// fold lines into per-ledger-type entries. Business date and user are
// re-read from inside the slice because the section repeats them.
func extractLedgerActivity(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	text := doc.FullText()
	start := strings.Index(text, "Ledger Activity Report")
	if start < 0 {
		return nil, domain.ErrSectionNotFound
	}
	section := text[start:]
	if end := strings.Index(section, "Ledger Summary"); end >= 0 {
		section = section[:end]
	}
	lines := nonBlankLines(section)

	var businessDate, user string
	for _, line := range lines {
		if strings.Contains(line, "Business Date:") {
			if m := businessDateRe.FindStringSubmatch(line); m != nil {
				businessDate = m[1]
			}
		}
		if strings.Contains(line, "User:") {
			if m := userRe.FindStringSubmatch(line); m != nil {
				user = m[1]
			}
		}
	}

	var entries []ledgerEntry
	var current *ledgerEntry
scan:
	for _, line := range lines {
		switch {
		case line == "Guest" || line == "Accounts Receivable" || line == "Advance Deposit":
			if current != nil {
				entries = append(entries, *current)
			}
			current = &ledgerEntry{ledgerType: line}
		case current == nil:
			continue
		case strings.Contains(line, "Total Balance Forward"):
			break scan
		case strings.Contains(line, "Opening Balance"):
			current.openingBalance = parse.AmountIn(line)
		case strings.Contains(line, "Credits"):
			current.credits = parse.AmountIn(line)
		case strings.Contains(line, "Adjustments"):
			current.adjustments = parse.AmountIn(line)
		case strings.Contains(line, "Debits"):
			current.debits = parse.AmountIn(line)
		case strings.Contains(line, "Transfer"):
			if amount := parse.AmountIn(line); amount != nil {
				if current.transfers == nil {
					zero := 0.0
					current.transfers = &zero
				}
				*current.transfers += *amount
			}
		case strings.Contains(line, "Balance Forward"):
			current.balanceForward = parse.AmountIn(line)
		}
	}
	if current != nil {
		entries = append(entries, *current)
	}

	rows := domain.NewRowSet(
		"ledger_type", "opening_balance", "credits", "adjustments", "debits",
		"transfers", "balance_forward", "business_date", "user_id",
	)
	bd := parse.Date(businessDate)
	for _, e := range entries {
		rows.Append(
			e.ledgerType, floatOrNil(e.openingBalance), floatOrNil(e.credits),
			floatOrNil(e.adjustments), floatOrNil(e.debits), floatOrNil(e.transfers),
			floatOrNil(e.balanceForward), timeOrNil(bd), user,
		)
	}
	return rows, nil
}

// Ledger Summary: marker-scoped label/amount capture grouped by the
// active summary heading.
func extractLedgerSummary(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	text := doc.FullText()
	start := strings.Index(text, "Ledger Summary")
	if start < 0 {
		return nil, domain.ErrSectionNotFound
	}
	lines := nonBlankLines(text[start:])

	var businessDate, user string
	if m := businessDateRe.FindStringSubmatch(text); m != nil {
		businessDate = m[1]
	}
	if m := userRe.FindStringSubmatch(text); m != nil {
		user = m[1]
	}
	bd := parse.Date(businessDate)

	rows := domain.NewRowSet("section", "field_name", "amount", "business_date", "user_id")
	currentSection := ""
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Guest Ledger Summary"):
			currentSection = "Guest Ledger"
		case strings.Contains(line, "Accounts Receivable Ledger Summary"):
			currentSection = "Accounts Receivable Ledger"
		case strings.Contains(line, "Advance Deposit Summary"):
			currentSection = "Advance Deposit Ledger"
		case strings.Contains(line, "Total Balance"):
			currentSection = "Total Ledger"
		case containsAny(line, []string{"Subtotal", "Closing Balance", "Opening Balance", "Balance Forward", "Net Change"}):
			field := line
			if i := strings.Index(field, ":"); i >= 0 {
				field = field[:i]
			}
			amount := parse.AmountIn(line)
			if amount != nil {
				rows.Append(currentSection, strings.TrimSpace(field), *amount, timeOrNil(bd), user)
			}
		}
	}
	return rows, nil
}

func ledgerActivitySection() Section {
	return Section{
		Name:    "Ledger Activity",
		Table:   "ledger_activity",
		Extract: extractLedgerActivity,
	}
}

func ledgerSummarySection() Section {
	return Section{
		Name:    "Ledger Summary",
		Table:   "ledger_summary",
		Extract: extractLedgerSummary,
	}
}
