// Package pdfreader normalizes PDF reports into the pages-of-lines
// document model the section extractors consume.
package pdfreader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read opens the file and rebuilds, per page, both the visual text
// lines and a cell grid from the positioned text rows. The same rows
// feed both views: line-scan extractors read Lines, table extractors
// read Grids.
func (r *Reader) Read(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrOpenFailed, "open pdf", err)
	}
	defer f.Close()

	doc := &domain.Document{Filename: filepath.Base(path)}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		p, err := readPage(page)
		if err != nil {
			return nil, domain.WrapError(domain.ErrOpenFailed, fmt.Sprintf("read pdf page %d", i), err)
		}
		doc.Pages = append(doc.Pages, p)
	}
	return doc, nil
}

func readPage(page pdf.Page) (domain.Page, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return domain.Page{}, err
	}

	var p domain.Page
	var grid domain.Grid
	for _, row := range rows {
		cells := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			if s := strings.TrimSpace(word.S); s != "" {
				cells = append(cells, s)
			}
		}
		if len(cells) == 0 {
			continue
		}
		p.Lines = append(p.Lines, strings.Join(cells, " "))
		grid = append(grid, cells)
	}
	if len(grid) > 0 {
		p.Grids = []domain.Grid{grid}
	}
	return p, nil
}
