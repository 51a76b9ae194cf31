package section

import (
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

func TestExtractReservationActivity(t *testing.T) {
	doc := pageDoc(`Reservation Activity Report
Account Guest Name Arrive Depart Nights Status
999999999
John Doe 01/01/25 01/02/25 1 CNF 150.00 RAC KNG 101
Expedia 12345678 Y 12/31/24 user1
888888888
Jane Roe 01/03/25 01/04/25 2 CNF 99.00 SRD
RATE KNG 102 DIRECT Y 12/30/24 user2
Total Reservations: 2`)

	rows := mustExtract(t, reservationActivitySection(), doc, domain.Metadata{})
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want 2", rows.Len())
	}

	if got := cell(t, rows, 0, "account"); got != "999999999" {
		t.Fatalf("account %v", got)
	}
	if got := cell(t, rows, 0, "guest_name"); got != "John Doe" {
		t.Fatalf("guest %v", got)
	}
	wantDate(t, cell(t, rows, 0, "arrive"), "2025-01-01")
	wantDate(t, cell(t, rows, 0, "depart"), "2025-01-02")
	wantFloat(t, cell(t, rows, 0, "rate"), 150)
	if got := cell(t, rows, 0, "room"); got != "101" {
		t.Fatalf("room %v", got)
	}
	if got := cell(t, rows, 0, "source"); got != "Expedia" {
		t.Fatalf("source %v", got)
	}
	if got := cell(t, rows, 0, "crs_conf_no"); got != "12345678" {
		t.Fatalf("crs conf %v", got)
	}
	wantDate(t, cell(t, rows, 0, "reserve_date"), "2024-12-31")
	if got := cell(t, rows, 0, "user"); got != "user1" {
		t.Fatalf("user %v", got)
	}

	// wrapped record: the split rate code is remerged, no CRS number
	if got := cell(t, rows, 1, "rate_code"); got != "SRD RATE" {
		t.Fatalf("rate code %v", got)
	}
	if got := cell(t, rows, 1, "crs_conf_no"); got != nil {
		t.Fatalf("crs conf should be null, got %v", got)
	}
	if got := cell(t, rows, 1, "gtd"); got != "Y" {
		t.Fatalf("gtd %v", got)
	}
	wantDate(t, cell(t, rows, 1, "reserve_date"), "2024-12-30")
	if got := cell(t, rows, 1, "user"); got != "user2" {
		t.Fatalf("user %v", got)
	}
}
