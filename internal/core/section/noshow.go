package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	leadingDigitsRe = regexp.MustCompile(`^\d+`)
	noShowRowRe     = regexp.MustCompile(`(.+?)\s+(\d{1,2}/\d{1,2}/\d{2})\s+(\d{1,2}/\d{1,2}/\d{2})\s+(.*)`)
)

// No Show Report: header row detected by "Account" plus "Guest Name";
// each data row is a leading account digit run, a lazily-captured name up
// to two date tokens, and positionally split trailing fields. Positions
// beyond the available token count are null, never an error.
func extractNoShow(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	text := doc.FullText()
	start := strings.Index(text, "No Show Report")
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

	rows := domain.NewRowSet(
		"account", "guest_name", "arrival_date", "departure_date", "source", "gtd",
		"rate_plan", "rate", "balance", "payment", "auth_status", "business_date", "user_id",
	)

	headerSeen := false
	for _, line := range lines {
		if strings.Contains(line, "Account") && strings.Contains(line, "Guest Name") {
			headerSeen = true
			continue
		}
		if !headerSeen {
			continue
		}
		if strings.HasPrefix(line, "Total No Shows") || strings.HasPrefix(line, "Total No-Show") {
			break
		}
		account := leadingDigitsRe.FindString(line)
		if account == "" {
			continue
		}
		rest := strings.TrimSpace(line[len(account):])
		m := noShowRowRe.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		guest := strings.TrimSpace(m[1])
		arrival := parse.Date(m[2])
		departure := parse.Date(m[3])
		fields := strings.Fields(strings.TrimSpace(m[4]))

		rows.Append(
			account, guest, timeOrNil(arrival), timeOrNil(departure),
			tokenAt(fields, 0), tokenAt(fields, 1), tokenAt(fields, 2),
			amountAt(fields, 3), amountAt(fields, 4), amountAt(fields, 5),
			tokenAt(fields, 6), timeOrNil(bd), user,
		)
	}
	return rows, nil
}

func tokenAt(fields []string, i int) any {
	if i >= len(fields) {
		return nil
	}
	return fields[i]
}

func amountAt(fields []string, i int) any {
	if i >= len(fields) {
		return nil
	}
	return floatOrNil(parse.Amount(fields[i]))
}

func noShowSection() Section {
	return Section{
		Name:    "No Show Report",
		Table:   "no_show_report",
		Extract: extractNoShow,
	}
}
