// Package resendmail delivers pipeline alerts over the Resend email
// API. Without an API key the notifier degrades to logging only, so
// local runs never require mail credentials.
package resendmail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"golang.org/x/time/rate"

	"github.com/hotelops/nightaudit-etl/internal/infrastructure/resilience"
)

type Notifier struct {
	client   *resend.Client
	from     string
	to       []string
	limiter  *rate.Limiter
	executor *resilience.Executor
}

type Config struct {
	APIKey string
	From   string
	To     []string

	// RatePerMinute caps outgoing alerts so a bad batch cannot flood
	// the on-call inbox. Zero means 10 per minute.
	RatePerMinute int

	Executor *resilience.Executor
}

func New(cfg Config) *Notifier {
	var client *resend.Client
	if cfg.APIKey != "" {
		client = resend.NewClient(cfg.APIKey)
	}

	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 10
	}

	return &Notifier{
		client:   client,
		from:     cfg.From,
		to:       cfg.To,
		limiter:  rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		executor: cfg.Executor,
	}
}

func (n *Notifier) Notify(ctx context.Context, subject, body string) error {
	if n.client == nil {
		slog.Warn("resend client not configured, skipping alert", "subject", subject)
		return nil
	}
	if len(n.to) == 0 {
		slog.Warn("no alert recipients configured, skipping alert", "subject", subject)
		return nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("alert rate limit wait: %w", err)
	}

	call := func(_ context.Context) error {
		_, err := n.client.Emails.Send(&resend.SendEmailRequest{
			From:    n.from,
			To:      n.to,
			Subject: subject,
			Text:    body,
		})
		if err != nil {
			return fmt.Errorf("resend send: %w", err)
		}
		return nil
	}

	if n.executor != nil {
		return n.executor.Execute(ctx, "resend.send_alert", call, nil)
	}
	return call(ctx)
}
