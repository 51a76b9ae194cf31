package section

import (
	"errors"
	"testing"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

const ledgerFixture = `Ledger Activity Report
Business Date: 1/1/2025
User: auditor1
Guest
Opening Balance 5,000.00
Credits (1,200.00)
Adjustments 0.00
Debits 2,200.00
Transfer In 100.00
Transfer Out (50.00)
Balance Forward 6,050.00
Accounts Receivable
Opening Balance 800.00
Balance Forward 800.00
Total Balance Forward 6,850.00
Ledger Summary
Guest Ledger Summary
Opening Balance: 5,000.00
Closing Balance: 6,050.00
Advance Deposit Summary
Subtotal: 250.00
Total Balance
Net Change: 1,050.00`

func TestExtractLedgerActivity(t *testing.T) {
	rows := mustExtract(t, ledgerActivitySection(), pageDoc(ledgerFixture), domain.Metadata{})
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want 2 ledger types", rows.Len())
	}
	if got := cell(t, rows, 0, "ledger_type"); got != "Guest" {
		t.Fatalf("ledger type %v", got)
	}
	wantFloat(t, cell(t, rows, 0, "opening_balance"), 5000)
	wantFloat(t, cell(t, rows, 0, "credits"), -1200)
	wantFloat(t, cell(t, rows, 0, "transfers"), 50)
	wantFloat(t, cell(t, rows, 0, "balance_forward"), 6050)
	wantDate(t, cell(t, rows, 0, "business_date"), "2025-01-01")
	if got := cell(t, rows, 0, "user_id"); got != "auditor1" {
		t.Fatalf("user %v", got)
	}

	if got := cell(t, rows, 1, "ledger_type"); got != "Accounts Receivable" {
		t.Fatalf("ledger type %v", got)
	}
	wantFloat(t, cell(t, rows, 1, "opening_balance"), 800)
	if got := cell(t, rows, 1, "credits"); got != nil {
		t.Fatalf("absent field should stay null, got %v", got)
	}
}

func TestExtractLedgerSummary(t *testing.T) {
	rows := mustExtract(t, ledgerSummarySection(), pageDoc(ledgerFixture), domain.Metadata{})
	if rows.Len() != 4 {
		t.Fatalf("got %d rows, want 4", rows.Len())
	}
	if got := cell(t, rows, 0, "section"); got != "Guest Ledger" {
		t.Fatalf("section %v", got)
	}
	if got := cell(t, rows, 0, "field_name"); got != "Opening Balance" {
		t.Fatalf("field %v", got)
	}
	wantFloat(t, cell(t, rows, 1, "amount"), 6050)
	if got := cell(t, rows, 2, "section"); got != "Advance Deposit Ledger" {
		t.Fatalf("section %v", got)
	}
	if got := cell(t, rows, 3, "section"); got != "Total Ledger" {
		t.Fatalf("section %v", got)
	}
	if got := cell(t, rows, 3, "field_name"); got != "Net Change" {
		t.Fatalf("field %v", got)
	}
}

func TestLedgerSectionsAbsent(t *testing.T) {
	for _, s := range []Section{ledgerActivitySection(), ledgerSummarySection()} {
		if _, err := s.Extract(pageDoc("unrelated text"), domain.Metadata{}); !errors.Is(err, domain.ErrSectionNotFound) {
			t.Fatalf("%s: err = %v, want ErrSectionNotFound", s.Name, err)
		}
	}
}
