package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	businessDateRe = regexp.MustCompile(`Business Date:\s*(\d{1,2}/\d{1,2}/\d{4})`)
	propertyCodeRe = regexp.MustCompile(`Property Code:\s*(\S+)`)
	userRe         = regexp.MustCompile(`User:\s*(\S+)`)
	printDateRe    = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
)

// ExtractMetadata scans every line of every page for the four labeled
// header fields. Only the first match per label is kept; labels that
// never appear leave the field unset.
func ExtractMetadata(doc *domain.Document) domain.Metadata {
	var meta domain.Metadata
	for _, page := range doc.Pages {
		for _, line := range page.Lines {
			if meta.BusinessDate == nil && strings.Contains(line, "Business Date:") {
				if m := businessDateRe.FindStringSubmatch(line); m != nil {
					meta.BusinessDate = parse.Date(m[1])
				}
			}
			if meta.PropertyCode == "" && strings.Contains(line, "Property Code:") {
				if m := propertyCodeRe.FindStringSubmatch(line); m != nil {
					meta.PropertyCode = m[1]
				}
			}
			if meta.UserID == "" && strings.Contains(line, "User:") {
				if m := userRe.FindStringSubmatch(line); m != nil {
					meta.UserID = m[1]
				}
			}
			if meta.ReportDate == nil && strings.Contains(line, "Date/Time of Printing:") {
				if m := printDateRe.FindStringSubmatch(line); m != nil {
					meta.ReportDate = parse.Date(m[1])
				}
			}
		}
	}
	return meta
}

