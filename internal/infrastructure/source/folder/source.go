// Package folder lists night audit PDFs from a drop directory. Reports
// land there from the property management system's scheduled export.
package folder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Source struct {
	dir    string
	marker string
}

// New returns a source over dir. Only ".pdf" files whose name contains
// marker (case insensitive) are listed; an empty marker lists every
// PDF in the directory.
func New(dir, marker string) *Source {
	return &Source{dir: dir, marker: strings.ToLower(marker)}
}

func (s *Source) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read report folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}
		if s.marker != "" && !strings.Contains(name, s.marker) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
