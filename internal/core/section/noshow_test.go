package section

import (
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

func TestExtractNoShow(t *testing.T) {
	doc := pageDoc(`No Show Report
Business Date: 1/1/2025 User: auditor1
Account Guest Name Arrival Departure Source GTD Rate Plan Rate Balance Payment Auth
123456 John Smith 01/01/25 01/02/25 Expedia Y RAC 120.00 0.00 0.00 NA
123457 Jane Roe 01/01/25 01/03/25 WEB N
Total No Shows: 2`)

	rows := mustExtract(t, noShowSection(), doc, domain.Metadata{})
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want 2", rows.Len())
	}
	if got := cell(t, rows, 0, "guest_name"); got != "John Smith" {
		t.Fatalf("guest %v", got)
	}
	wantDate(t, cell(t, rows, 0, "arrival_date"), "2025-01-01")
	wantDate(t, cell(t, rows, 0, "departure_date"), "2025-01-02")
	if got := cell(t, rows, 0, "source"); got != "Expedia" {
		t.Fatalf("source %v", got)
	}
	wantFloat(t, cell(t, rows, 0, "rate"), 120)
	if got := cell(t, rows, 0, "auth_status"); got != "NA" {
		t.Fatalf("auth %v", got)
	}
	wantDate(t, cell(t, rows, 0, "business_date"), "2025-01-01")
	if got := cell(t, rows, 0, "user_id"); got != "auditor1" {
		t.Fatalf("user %v", got)
	}

	// short row: positions past the token count are null, not an error
	if got := cell(t, rows, 1, "gtd"); got != "N" {
		t.Fatalf("gtd %v", got)
	}
	if got := cell(t, rows, 1, "rate"); got != nil {
		t.Fatalf("missing rate should be null, got %v", got)
	}
	if got := cell(t, rows, 1, "auth_status"); got != nil {
		t.Fatalf("missing auth should be null, got %v", got)
	}
}

func TestExtractNoShowStopsAtTotal(t *testing.T) {
	doc := pageDoc(`No Show Report
Account Guest Name
Total No Shows: 0
123456 John Smith 01/01/25 01/02/25 Expedia Y RAC 120.00 0.00 0.00 NA`)
	rows := mustExtract(t, noShowSection(), doc, domain.Metadata{})
	if !rows.Empty() {
		t.Fatalf("rows after the totals line must be ignored, got %d", rows.Len())
	}
}
