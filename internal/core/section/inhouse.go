package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	threeDigitRe  = regexp.MustCompile(`^\d{3}$`)
	dateTokenRe   = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	confTrailerRe = regexp.MustCompile(`(\d{6,8})$`)
)

// In-House List: room is a 3-digit token, account the following digit
// run. Guest-name tokens accumulate until a date-shaped token; a trailing
// 6-8 digit run inside the name is the confirmation number. The last four
// fields are read by fixed offsets from the end of the token list.
func extractInHouse(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"room", "account", "guest_name", "confirmation_notes", "arrive", "depart",
		"ppl", "type", "rate_code", "rate", "gtd", "source", "market", "balance",
	)

	for _, page := range doc.Pages {
		if !pageContains(page, "In House List") {
			continue
		}
		for _, raw := range page.Lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 9 || !threeDigitRe.MatchString(parts[0]) || !allDigits(parts[1]) {
				continue
			}
			room, account := parts[0], parts[1]

			var guestParts []string
			idx := 2
			for idx < len(parts) && !dateTokenRe.MatchString(parts[idx]) {
				guestParts = append(guestParts, parts[idx])
				idx++
			}
			guestRaw := strings.Join(guestParts, " ")
			confirmation := ""
			guest := strings.TrimSpace(guestRaw)
			if m := confTrailerRe.FindStringSubmatchIndex(guestRaw); m != nil {
				confirmation = guestRaw[m[2]:m[3]]
				guest = strings.TrimSpace(guestRaw[:m[2]])
			}

			var arrive, depart *string
			var ppl, rtype, rateCode, gtd, source, market string
			var rate, balance *float64
			if idx+7 <= len(parts) {
				arrive, depart = &parts[idx], &parts[idx+1]
				ppl = parts[idx+2]
				rtype = parts[idx+3]
				rateCode = parts[idx+4]
				rate = parse.Amount(parts[idx+5])

				last := parts[len(parts)-4:]
				balance = parse.Amount(last[len(last)-1])
				market = last[len(last)-2]
				source = last[len(last)-3]
				if len(last) == 4 && len(last[0]) <= 4 {
					gtd = last[0]
				}
			}

			rows.Append(
				room, account, guest, confirmation,
				dateOrNil(arrive), dateOrNil(depart),
				ppl, rtype, rateCode, floatOrNil(rate), gtd, source, market, floatOrNil(balance),
			)
		}
	}
	return rows, nil
}

func pageContains(page domain.Page, marker string) bool {
	for _, line := range page.Lines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func dateOrNil(token *string) any {
	if token == nil {
		return nil
	}
	if d := parse.Date(*token); d != nil {
		return *d
	}
	return nil
}

func inHouseSection() Section {
	return Section{
		Name:    "In-House List",
		Table:   "inhouse_list_data",
		Extract: extractInHouse,
		Stamp:   []MetaField{MetaProperty, MetaBusinessDate},
	}
}
