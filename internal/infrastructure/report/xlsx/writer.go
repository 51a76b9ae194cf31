// Package xlsx renders one run's batch summary as a workbook for the
// night audit team, who review load results in Excel rather than logs.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteSummary(path string, summary domain.BatchSummary) error {
	f := excelize.NewFile()
	const sheet = "Run Summary"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"File", "Status", "Rows Loaded", "Failed Sections", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for _, o := range summary.Outcomes {
		write(1, o.Filename)
		write(2, string(o.Status))
		write(3, o.RowsLoaded)
		write(4, strings.Join(o.FailedSections, ", "))
		write(5, o.Err)
		row++
	}

	row++
	totals := []struct {
		label string
		value int
	}{
		{"Total Files", summary.Total},
		{"Succeeded", summary.Succeeded},
		{"Partial", summary.Partial},
		{"Skipped", summary.Skipped},
		{"Failed", summary.Failed},
		{"Rows Loaded", summary.Rows},
	}
	for _, t := range totals {
		write(1, t.label)
		write(2, t.value)
		row++
	}
	write(1, "Run ID")
	write(2, summary.RunID)

	_ = f.SetColWidth(sheet, "A", "A", 48)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 50)
	_ = f.SetColWidth(sheet, "E", "E", 60)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx save: %w", err)
	}
	return nil
}
