package resendmail

import (
	"context"
	"testing"
)

func TestNotifySkipsWithoutAPIKey(t *testing.T) {
	n := New(Config{From: "etl@hotelops.example", To: []string{"oncall@hotelops.example"}})
	if err := n.Notify(context.Background(), "[ETL Failure] audit.pdf", "details"); err != nil {
		t.Fatalf("expected unconfigured notifier to skip, got %v", err)
	}
}

func TestNotifySkipsWithoutRecipients(t *testing.T) {
	n := New(Config{APIKey: "re_test", From: "etl@hotelops.example"})
	if err := n.Notify(context.Background(), "[ETL Failure] audit.pdf", "details"); err != nil {
		t.Fatalf("expected notifier without recipients to skip, got %v", err)
	}
}

func TestNewAppliesRateDefault(t *testing.T) {
	n := New(Config{})
	if n.limiter.Burst() != 10 {
		t.Fatalf("expected default burst 10, got %d", n.limiter.Burst())
	}
}
