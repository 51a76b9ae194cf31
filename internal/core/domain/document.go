package domain

import "strings"

// Grid is a detected table inside a page: rows of text cells with no
// guaranteed semantics until a section extractor interprets it.
type Grid [][]string

// FlatText joins every cell of the grid, used for keyword-based
// identification of which report table a grid holds.
func (g Grid) FlatText() string {
	var sb strings.Builder
	for _, row := range g {
		for _, cell := range row {
			sb.WriteString(cell)
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

type Page struct {
	Lines []string
	Grids []Grid
}

// Document is one Night Audit report, normalized to pages of text lines
// plus detected grids. It lives only for the duration of one file's run.
type Document struct {
	Filename string
	Pages    []Page
}

func (d *Document) PageTexts() []string {
	texts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		texts = append(texts, strings.Join(p.Lines, "\n"))
	}
	return texts
}

func (d *Document) FullText() string {
	return strings.Join(d.PageTexts(), "\n")
}

func (d *Document) Grids() []Grid {
	var grids []Grid
	for _, p := range d.Pages {
		grids = append(grids, p.Grids...)
	}
	return grids
}
