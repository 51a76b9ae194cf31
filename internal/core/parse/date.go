package parse

import (
	"strings"
	"time"
)

// Calendar dates only; the reports carry no timezone.
var dateLayouts = []string{"1/2/2006", "1/2/06", "1-2-2006"}

// Date tries each known report date layout in order and returns the first
// parse that succeeds, or nil when none match.
func Date(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
