package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	fullDateRe    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	adultChildRe  = regexp.MustCompile(`\d+\s*/\s*\d+`)
	sourceOptions = []string{"CRS", "DIRECT"}
)

// Rate Discrepancy Report: entries are delimited by a 3-digit room token
// immediately followed by a 9-digit account token. Inside an entry the
// guest-name boundary is the "N / N" adult/child pattern, and the
// market/source boundary is found via the recognized source tokens.
func extractRateDiscrepancy(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	capture := false
	var blocks []string
	for _, text := range doc.PageTexts() {
		if strings.Contains(text, "Rate Discrepancy Report") {
			capture = true
		}
		if capture {
			if i := strings.Index(text, "Reservation Activity Report"); i >= 0 {
				text = text[:i]
			}
			blocks = append(blocks, text)
		}
	}
	lines := nonBlankLines(strings.Join(blocks, "\n"))

	rows := domain.NewRowSet(
		"start_date", "guest_name", "end_date", "room", "account", "adults_children",
		"rate_plan", "market", "source", "configured_rate", "override_rate", "difference",
	)

	isEntryStart := func(i int) bool {
		return i+1 < len(lines) &&
			allDigits(lines[i]) && len(lines[i]) == 3 &&
			allDigits(lines[i+1]) && len(lines[i+1]) == 9
	}

	i := 0
	for i < len(lines) {
		if !isEntryStart(i) {
			i++
			continue
		}
		room, account := lines[i], lines[i+1]
		j := i + 2
		var guestBlock []string
		for j < len(lines) && !isEntryStart(j) {
			guestBlock = append(guestBlock, lines[j])
			j++
		}
		guestText := strings.Join(guestBlock, " ")

		var guest, adultsChildren, startDate, ratePlan, market, source, endDate string
		var configured, override, difference string
		if loc := adultChildRe.FindStringIndex(guestText); loc != nil {
			adultsChildren = guestText[loc[0]:loc[1]]
			guest = strings.TrimSpace(guestText[:loc[0]])
			afterAC := guestText[loc[1]:]
			if dloc := fullDateRe.FindStringIndex(afterAC); dloc != nil {
				startDate = afterAC[dloc[0]:dloc[1]]
				parts := strings.Fields(strings.TrimSpace(afterAC[dloc[1]:]))
				if len(parts) > 0 {
					ratePlan = parts[0]
					parts = parts[1:]
				}
				var marketParts []string
				for len(parts) > 0 && !isSourceToken(parts[0]) {
					marketParts = append(marketParts, parts[0])
					parts = parts[1:]
				}
				market = strings.Join(marketParts, " ")
				if len(parts) > 0 {
					source = parts[0]
					parts = parts[1:]
				}
				if len(parts) >= 3 {
					configured, override, difference = parts[0], parts[1], parts[2]
					parts = parts[3:]
				}
				for _, part := range parts {
					if fullDateRe.MatchString(part) {
						endDate = part
						break
					}
				}
			}
		}

		if guest != "" && adultsChildren != "" && startDate != "" {
			start := parse.Date(startDate)
			end := start
			if endDate != "" {
				end = parse.Date(endDate)
			}
			rows.Append(
				timeOrNil(start), guest, timeOrNil(end), room, account, adultsChildren,
				ratePlan, market, source,
				floatOrNil(parse.Amount(configured)), floatOrNil(parse.Amount(override)),
				floatOrNil(parse.Amount(difference)),
			)
		}
		i = j
	}
	return rows, nil
}

func isSourceToken(token string) bool {
	for _, s := range sourceOptions {
		if token == s {
			return true
		}
	}
	return false
}

func rateDiscrepancySection() Section {
	return Section{
		Name:    "Rate Discrepancy",
		Table:   "rate_discrepancy",
		Extract: extractRateDiscrepancy,
	}
}
