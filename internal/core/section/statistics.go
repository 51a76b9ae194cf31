package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

// Token rule for statistics lines: numeric runs (optionally comma-grouped,
// decimal, percent-suffixed) or non-numeric word runs.
var statsTokenRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?\s?%?|[^\d\s][^0-9]*`)

// parseStatistics decodes a marker-delimited statistics block: each line
// yields a metric name plus the five trailing values; lines with fewer
// than five values are malformed and skipped. The first parsed row is a
// header artifact and dropped when any data rows follow it.
func parseStatistics(sectionText string) *domain.RowSet {
	rows := domain.NewRowSet("metric", "today", "current_ptd", "last_year_ptd", "current_ytd", "last_ytd")
	for _, line := range strings.Split(sectionText, "\n") {
		raw := statsTokenRe.FindAllString(strings.TrimSpace(line), -1)
		var tokens []string
		for _, t := range raw {
			if s := strings.TrimSpace(t); s != "" {
				tokens = append(tokens, s)
			}
		}
		if len(tokens) < 5 {
			continue
		}
		metric := strings.Join(tokens[:len(tokens)-5], " ")
		values := tokens[len(tokens)-5:]
		rows.Append(metric, values[0], values[1], values[2], values[3], values[4])
	}
	if rows.Len() > 1 {
		rows.Records = rows.Records[1:]
	}
	return rows
}

func statisticsExtractor(start, end string) func(*domain.Document, domain.Metadata) (*domain.RowSet, error) {
	return func(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
		text := sliceBetween(doc.FullText(), start, end)
		if text == "" {
			return nil, domain.ErrSectionNotFound
		}
		return parseStatistics(text), nil
	}
}

func roomStatisticsSection() Section {
	return Section{
		Name:    "Room Statistics",
		Table:   "room_statistics",
		Extract: statisticsExtractor("Room Statistics", "Performance Statistics"),
		Stamp:   []MetaField{MetaBusinessDate},
	}
}

func performanceStatisticsSection() Section {
	return Section{
		Name:    "Performance Statistics",
		Table:   "performance_statistics",
		Extract: statisticsExtractor("Performance Statistics", "Revenue"),
		Stamp:   []MetaField{MetaBusinessDate},
	}
}

func guestStatisticsSection() Section {
	return Section{
		Name:    "Guest Statistics",
		Table:   "guest_statistics",
		Extract: statisticsExtractor("Guest Statistics", "Today's Activity"),
		Stamp:   []MetaField{MetaBusinessDate},
	}
}
