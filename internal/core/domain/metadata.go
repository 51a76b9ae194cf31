package domain

import "time"

// Metadata holds the labeled header fields scanned once per document.
// Every field is optional; absent labels leave the zero value.
type Metadata struct {
	BusinessDate *time.Time
	PropertyCode string
	UserID       string
	ReportDate   *time.Time
}
