package section

import (
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

func TestExtractRateDiscrepancy(t *testing.T) {
	doc := pageDoc(`Rate Discrepancy Report
101
123456789
John Doe
2 / 0
1/1/2025 RAC CORP GROUP CRS 150.00 130.00 20.00 1/2/2025
102
987654321
Jane Roe 1 / 1 1/5/2025 BAR LEI DIRECT 99.00 89.00 10.00
Reservation Activity Report
103
111111111
Should Not Appear 1 / 0 1/9/2025 RAC LEI CRS 1.00 1.00 0.00`)

	rows := mustExtract(t, rateDiscrepancySection(), doc, domain.Metadata{})
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want capture to stop at the next report", rows.Len())
	}

	if got := cell(t, rows, 0, "room"); got != "101" {
		t.Fatalf("room %v", got)
	}
	if got := cell(t, rows, 0, "account"); got != "123456789" {
		t.Fatalf("account %v", got)
	}
	if got := cell(t, rows, 0, "guest_name"); got != "John Doe" {
		t.Fatalf("guest %v", got)
	}
	if got := cell(t, rows, 0, "adults_children"); got != "2 / 0" {
		t.Fatalf("adults/children %v", got)
	}
	if got := cell(t, rows, 0, "market"); got != "CORP GROUP" {
		t.Fatalf("multi word market %v", got)
	}
	if got := cell(t, rows, 0, "source"); got != "CRS" {
		t.Fatalf("source %v", got)
	}
	wantFloat(t, cell(t, rows, 0, "configured_rate"), 150)
	wantFloat(t, cell(t, rows, 0, "override_rate"), 130)
	wantFloat(t, cell(t, rows, 0, "difference"), 20)
	wantDate(t, cell(t, rows, 0, "start_date"), "2025-01-01")
	wantDate(t, cell(t, rows, 0, "end_date"), "2025-01-02")

	// no trailing end date: the stay end defaults to its start
	if got := cell(t, rows, 1, "source"); got != "DIRECT" {
		t.Fatalf("source %v", got)
	}
	wantDate(t, cell(t, rows, 1, "start_date"), "2025-01-05")
	wantDate(t, cell(t, rows, 1, "end_date"), "2025-01-05")
}
