package section

import (
	"fmt"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

// Gross Room Revenue: grid-based. The owning grid carries the room
// charge description plus a YTD column; everything above the header row
// is title furniture, and rows without an opening balance are
// separators or totals rendered mid-grid.
func extractGrossRoomRevenue(doc *domain.Document, meta domain.Metadata) (*domain.RowSet, error) {
	for _, grid := range doc.Grids() {
		flat := grid.FlatText()
		if !strings.Contains(flat, "ROOM CHARGE (RM)") || !strings.Contains(flat, "YTD Totals") {
			continue
		}
		headerIdx := -1
		for ri, gridRow := range grid {
			if rowHasCell(gridRow, "Today's Net") && rowHasCell(gridRow, "YTD Totals") {
				headerIdx = ri
				break
			}
		}
		if headerIdx < 0 {
			continue
		}

		rows := domain.NewRowSet(
			"description", "opening_balance", "today_total", "adjustments",
			"net", "monthly_total", "ytd_total", "business_date",
		)
		for _, gridRow := range grid[headerIdx+1:] {
			if len(gridRow) == 0 {
				continue
			}
			desc := strings.TrimSpace(gridRow[0])
			lower := strings.ToLower(desc)
			if strings.Contains(lower, "date/time") || lower == "room" {
				continue
			}
			opening := gridAmount(gridRow, 1)
			if opening == nil {
				continue
			}
			rows.Append(
				desc, *opening,
				floatOrNil(gridAmount(gridRow, 2)), floatOrNil(gridAmount(gridRow, 3)),
				floatOrNil(gridAmount(gridRow, 4)), floatOrNil(gridAmount(gridRow, 5)),
				floatOrNil(gridAmount(gridRow, 6)), timeOrNil(meta.BusinessDate),
			)
		}
		return rows, nil
	}
	return nil, domain.ErrSectionNotFound
}

var rateCodePatterns = []string{
	"SRD", "SAPR", "SP3", "BAR", "LEXT", "LCOM", "LCLC", "SNP", "SSC", "SO2BK", "SGML",
}

// Revenue by Rate Code spans several grids. A candidate grid is wide
// and tall enough and has at least three known rate codes in its first
// column. The first grid carries a two row header that later grids
// omit, so its combined header names drive the column mapping for all
// of them.
func extractRevenueByRateCode(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
	rows := domain.NewRowSet(
		"rate_code", "room_nights", "room_nights_percent", "room_revenue",
		"room_revenue_percent", "daily_avg", "ptd_room_nights", "ptd_room_revenue",
		"ptd_avg", "ytd_room_nights", "ytd_room_revenue", "ytd_avg",
	)

	wanted := []string{
		"Rate Code", "Room Nights", "%", "Room Revenue", "%_2", "Daily AVG",
		"PTD Room Nights", "PTD Room Revenue", "PTD AVG", "Room Nights_2",
		"YTD Room Revenue", "% YTD AVG",
	}

	var headers []string
	for _, grid := range doc.Grids() {
		if len(grid) < 5 || len(grid[0]) < 8 {
			continue
		}
		codeLike := 0
		for _, gridRow := range grid {
			if len(gridRow) > 0 && containsAny(gridRow[0], rateCodePatterns) {
				codeLike++
			}
		}
		if codeLike < 3 {
			continue
		}

		dataStart := 2
		if headers == nil {
			headers = uniqueHeaders(combineHeaderRows(grid[2], grid[3]))
			dataStart = 4
		}

		colIdx := make(map[string]int, len(headers))
		for i, h := range headers {
			colIdx[h] = i
		}
		for _, gridRow := range grid[dataStart:] {
			rec := make([]any, len(wanted))
			for wi, name := range wanted {
				ci, ok := colIdx[name]
				if !ok || ci >= len(gridRow) {
					continue
				}
				cell := strings.TrimSpace(gridRow[ci])
				if wi == 0 {
					rec[wi] = stringOrNil(cell)
				} else {
					rec[wi] = floatOrNil(parse.Amount(strings.TrimSuffix(cell, "%")))
				}
			}
			if rec[0] == nil {
				continue
			}
			rows.Append(rec...)
		}
	}
	if headers == nil {
		return nil, domain.ErrSectionNotFound
	}
	return rows, nil
}

func rowHasCell(gridRow []string, want string) bool {
	for _, cell := range gridRow {
		if strings.TrimSpace(cell) == want {
			return true
		}
	}
	return false
}

func gridAmount(gridRow []string, i int) *float64 {
	if i >= len(gridRow) {
		return nil
	}
	return parse.Amount(gridRow[i])
}

func combineHeaderRows(row1, row2 []string) []string {
	n := len(row1)
	if len(row2) < n {
		n = len(row2)
	}
	combined := make([]string, n)
	for i := 0; i < n; i++ {
		joined := strings.TrimSpace(row1[i] + " " + row2[i])
		combined[i] = strings.ReplaceAll(joined, "  ", " ")
	}
	return combined
}

func uniqueHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		seen[h]++
		if seen[h] == 1 {
			out[i] = h
		} else {
			out[i] = fmt.Sprintf("%s_%d", h, seen[h])
		}
	}
	return out
}

func grossRoomRevenueSection() Section {
	return Section{
		Name:    "Gross Room Revenue",
		Table:   "gross_room_revenue_detail",
		Extract: extractGrossRoomRevenue,
	}
}

func revenueByRateCodeSection() Section {
	return Section{
		Name:    "Revenue by Rate Code",
		Table:   "revenue_by_rate_code",
		Extract: extractRevenueByRateCode,
	}
}
