package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	reservationAccountRe = regexp.MustCompile(`^\d{9}$`)
	reservationDateRe    = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
)

var reservationHeaderFragments = []string{
	"Account Guest Name", "GTD Reserve Date", "Business Date",
	"Total Reservations", "Total Room Nights",
}

// Reservation Activity: each record begins with a nine digit account
// number and may wrap across several physical lines, so lines are
// grouped first and decoded flat. "SRD RATE" is a single rate code the
// report renders as two tokens.
func extractReservationActivity(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	var collected []string
	for _, text := range doc.PageTexts() {
		capture := false
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if strings.Contains(line, "Reservation Activity Report") {
				capture = true
				continue
			}
			if strings.Contains(line, "Total Reservations:") {
				capture = false
				break
			}
			if !capture || line == "" || containsAny(line, reservationHeaderFragments) {
				continue
			}
			collected = append(collected, line)
		}
	}

	var records [][]string
	var current []string
	for _, line := range collected {
		if reservationAccountRe.MatchString(line) {
			if len(current) > 0 {
				records = append(records, current)
			}
			current = []string{line}
		} else if len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		records = append(records, current)
	}

	rows := domain.NewRowSet(
		"account", "guest_name", "arrive", "depart", "nights", "status",
		"rate", "rate_code", "type", "room", "source", "crs_conf_no",
		"gtd", "reserve_date", "user",
	)
	for _, record := range records {
		flat := strings.Fields(strings.Join(record, " "))
		flat = mergeSRDRate(flat)
		if len(flat) < 8 {
			continue
		}
		account := flat[0]
		idx := 1
		for idx < len(flat) && !reservationDateRe.MatchString(flat[idx]) {
			idx++
		}
		guest := strings.Join(flat[1:idx], " ")
		if idx >= len(flat) {
			continue
		}

		arrive := flat[idx]
		depart := fieldAt(flat, idx+1)
		nights := fieldAt(flat, idx+2)
		status := fieldAt(flat, idx+3)
		rate := fieldAt(flat, idx+4)
		rateCode := fieldAt(flat, idx+5)
		roomType := fieldAt(flat, idx+6)
		room := fieldAt(flat, idx+7)

		var source string
		var afterSource []string
		if room != "" && !allDigits(room) {
			source = room
			room = ""
			if idx+8 < len(flat) {
				afterSource = flat[idx+8:]
			}
		} else {
			source = fieldAt(flat, idx+8)
			if idx+9 < len(flat) {
				afterSource = flat[idx+9:]
			}
		}

		var crsConfNo, gtd, reserveDate, user string
		if len(afterSource) > 0 {
			if allDigits(afterSource[0]) {
				crsConfNo = afterSource[0]
				gtd = fieldAt(afterSource, 1)
				reserveDate = fieldAt(afterSource, 2)
				if len(afterSource) > 3 {
					user = strings.Join(afterSource[3:], " ")
				}
			} else {
				gtd = afterSource[0]
				reserveDate = fieldAt(afterSource, 1)
				if len(afterSource) > 2 {
					user = strings.Join(afterSource[2:], " ")
				}
			}
		}

		rows.Append(
			account, guest,
			timeOrNil(parse.Date(arrive)), timeOrNil(parse.Date(depart)),
			stringOrNil(nights), stringOrNil(status),
			floatOrNil(parse.Amount(rate)), stringOrNil(rateCode), stringOrNil(roomType),
			stringOrNil(room), stringOrNil(source), stringOrNil(crsConfNo),
			stringOrNil(gtd), timeOrNil(parse.Date(reserveDate)), stringOrNil(user),
		)
	}
	return rows, nil
}

func fieldAt(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func mergeSRDRate(flat []string) []string {
	for i := 0; i+1 < len(flat); i++ {
		if flat[i] == "SRD" && (flat[i+1] == "RATE" || flat[i+1] == "Rate") {
			merged := append([]string{}, flat[:i]...)
			merged = append(merged, "SRD RATE")
			merged = append(merged, flat[i+2:]...)
			return merged
		}
	}
	return flat
}

func reservationActivitySection() Section {
	return Section{
		Name:    "Reservation Activity",
		Table:   "reservation_activity",
		Extract: extractReservationActivity,
	}
}
