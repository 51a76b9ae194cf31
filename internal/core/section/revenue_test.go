package section

import (
	"errors"
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

func TestExtractGrossRoomRevenue(t *testing.T) {
	grid := domain.Grid{
		{"Gross Room Revenue", "", "", "", "", "", ""},
		{"Description", "Opening Balance", "Today's Total", "Adjustments", "Today's Net", "PTD Totals", "YTD Totals"},
		{"ROOM CHARGE (RM)", "1,000.00", "250.00", "0.00", "250.00", "5,000.00", "60,000.00"},
		{"STATE TAX (T1)", "(100.00)", "15.00", "0.00", "15.00", "300.00", "3,600.00"},
		{"Room", "", "", "", "", "", ""},
		{"Date/Time of Printing: 1/2/2025", "", "", "", "", "", ""},
	}
	bd := parse.Date("1/1/2025")
	rows := mustExtract(t, grossRoomRevenueSection(), gridDoc(grid), domain.Metadata{BusinessDate: bd})
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want separator and footer rows dropped", rows.Len())
	}
	if got := cell(t, rows, 0, "description"); got != "ROOM CHARGE (RM)" {
		t.Fatalf("description %v", got)
	}
	wantFloat(t, cell(t, rows, 0, "opening_balance"), 1000)
	wantFloat(t, cell(t, rows, 0, "ytd_total"), 60000)
	wantFloat(t, cell(t, rows, 1, "opening_balance"), -100)
	wantDate(t, cell(t, rows, 0, "business_date"), "2025-01-01")
}

func TestExtractGrossRoomRevenueAbsent(t *testing.T) {
	_, err := grossRoomRevenueSection().Extract(gridDoc(domain.Grid{{"unrelated"}}), domain.Metadata{})
	if !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}

func rateCodeHeaderGrid(dataRows ...[]string) domain.Grid {
	grid := domain.Grid{
		{"Revenue by Rate Code", "", "", "", "", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
		{"Rate", "Room", "", "Room", "", "Daily", "PTD Room", "PTD Room", "PTD", "Room", "YTD Room", "% YTD"},
		{"Code", "Nights", "%", "Revenue", "%", "AVG", "Nights", "Revenue", "AVG", "Nights", "Revenue", "AVG"},
	}
	return append(grid, dataRows...)
}

func TestExtractRevenueByRateCode(t *testing.T) {
	first := rateCodeHeaderGrid(
		[]string{"SRD", "10", "5.0", "1,500.00", "4.2", "150.00", "100", "15,000.00", "150.00", "1,200", "180,000.00", "150.00"},
		[]string{"BAR", "20", "10.0", "2,400.00", "8.0", "120.00", "200", "24,000.00", "120.00", "2,000", "240,000.00", "120.00"},
		[]string{"SAPR", "5", "2.0", "600.00", "2.0", "120.00", "50", "6,000.00", "120.00", "500", "60,000.00", "120.00"},
	)
	continuation := domain.Grid{
		{"Revenue by Rate Code", "", "", "", "", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
		{"SNP", "2", "1.0", "200.00", "0.7", "100.00", "20", "2,000.00", "100.00", "200", "20,000.00", "100.00"},
		{"SSC", "1", "0.5", "90.00", "0.3", "90.00", "10", "900.00", "90.00", "100", "9,000.00", "90.00"},
		{"SGML", "4", "2.0", "480.00", "1.6", "120.00", "40", "4,800.00", "120.00", "400", "48,000.00", "120.00"},
	}

	rows := mustExtract(t, revenueByRateCodeSection(), gridDoc(first, continuation), domain.Metadata{})
	if rows.Len() != 6 {
		t.Fatalf("got %d rows, want 6 across both grids", rows.Len())
	}
	if got := cell(t, rows, 0, "rate_code"); got != "SRD" {
		t.Fatalf("rate code %v", got)
	}
	wantFloat(t, cell(t, rows, 0, "room_nights"), 10)
	wantFloat(t, cell(t, rows, 0, "room_nights_percent"), 5)
	wantFloat(t, cell(t, rows, 0, "room_revenue"), 1500)
	wantFloat(t, cell(t, rows, 0, "room_revenue_percent"), 4.2)
	wantFloat(t, cell(t, rows, 0, "ytd_room_nights"), 1200)
	wantFloat(t, cell(t, rows, 0, "ytd_room_revenue"), 180000)
	if got := cell(t, rows, 3, "rate_code"); got != "SNP" {
		t.Fatalf("continuation grid rate code %v", got)
	}
	wantFloat(t, cell(t, rows, 5, "ptd_room_revenue"), 4800)
}

func TestExtractRevenueByRateCodeAbsent(t *testing.T) {
	narrow := domain.Grid{{"a", "b"}, {"c", "d"}}
	_, err := revenueByRateCodeSection().Extract(gridDoc(narrow), domain.Metadata{})
	if !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("err = %v, want ErrSectionNotFound", err)
	}
}
