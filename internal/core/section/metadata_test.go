package section

import "testing"

func TestExtractMetadata(t *testing.T) {
	doc := pageDoc(
		"Night Audit Report\nProperty Code: LEX01\nBusiness Date: 1/1/2025\nUser: auditor1\nDate/Time of Printing: 1/2/2025 3:00 AM",
		"Business Date: 2/2/2025\nUser: someoneelse",
	)
	meta := ExtractMetadata(doc)
	if meta.PropertyCode != "LEX01" {
		t.Fatalf("property code %q", meta.PropertyCode)
	}
	if meta.UserID != "auditor1" {
		t.Fatalf("user %q", meta.UserID)
	}
	if meta.BusinessDate == nil || meta.BusinessDate.Format("2006-01-02") != "2025-01-01" {
		t.Fatalf("business date %v, later pages must not override the first match", meta.BusinessDate)
	}
	if meta.ReportDate == nil || meta.ReportDate.Format("2006-01-02") != "2025-01-02" {
		t.Fatalf("report date %v", meta.ReportDate)
	}
}

func TestExtractMetadataMissingFields(t *testing.T) {
	meta := ExtractMetadata(pageDoc("no header fields here"))
	if meta.BusinessDate != nil || meta.ReportDate != nil || meta.PropertyCode != "" || meta.UserID != "" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}
