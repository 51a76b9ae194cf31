package section

import (
	"regexp"
	"strings"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/core/parse"
)

var (
	taxPercentRe     = regexp.MustCompile(`([\d.]+)%`)
	taxNumberRunRe   = regexp.MustCompile(`[\d,.]+`)
	taxDateHeadingRe = regexp.MustCompile(`Revenue -\d+/\d+/\d+ through \d+/\d+/\d+`)
)

var taxLabels = []string{
	"Exempt Revenue -PTD", "Exempt Revenue -YTD",
	"Exempt -PTD", "Exempt -YTD",
	"Refund Revenue -PTD", "Refund Revenue -YTD",
}

type taxSectionID int

const (
	taxNone taxSectionID = iota
	taxByTax
	taxExemptTax
	taxByTxn
	taxRefund
)

// The four tax exempt summaries share one report region and one pass.
// The report prints tiny placeholder amounts where a summary has no
// data, so any value pair where both sides are at or below sentinelMax
// is nulled out.
func scanTaxExempt(doc *domain.Document, sentinelMax float64) map[taxSectionID]*domain.RowSet {
	var lines []string
	for _, text := range doc.PageTexts() {
		lines = append(lines, strings.Split(text, "\n")...)
	}

	out := map[taxSectionID]*domain.RowSet{
		taxByTax:     domain.NewRowSet("label", "t1", "t5", "business_date"),
		taxExemptTax: domain.NewRowSet("label", "t1", "t5", "business_date"),
		taxByTxn:     domain.NewRowSet("label", "rm", "total_tax_exempt_revenue", "business_date"),
		taxRefund:    domain.NewRowSet("label", "rm", "total_refund_revenue", "business_date"),
	}
	bd := shiftBusinessDate(doc)

	numsIn := func(s string) []float64 {
		var vals []float64
		for _, tok := range taxNumberRunRe.FindAllString(s, -1) {
			if v := parse.Amount(tok); v != nil {
				vals = append(vals, *v)
			}
		}
		return vals
	}

	current := taxNone
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case strings.Contains(line, "Tax Exempt Revenue Summary - By Tax"):
			current = taxByTax
		case strings.Contains(line, "Exempt -") && strings.Contains(line, "through"):
			current = taxExemptTax
		case strings.Contains(line, "Tax Exempt Revenue Summary - By Transaction Code"):
			current = taxByTxn
		case strings.Contains(line, "Tax Refund Revenue Summary - By Transaction Code"):
			current = taxRefund
		}

		if strings.Contains(line, "Current Tax Configuration") && current == taxByTax {
			var t1, t5 *float64
			if i+1 < len(lines) {
				if m := taxPercentRe.FindStringSubmatch(lines[i+1]); m != nil {
					t1 = parse.Amount(m[1])
				}
			}
			if i+2 < len(lines) {
				if m := taxPercentRe.FindStringSubmatch(lines[i+2]); m != nil {
					t5 = parse.Amount(m[1])
				}
			}
			if t1 != nil && t5 != nil {
				out[taxByTax].Append("Current Tax Configuration", *t1, *t5, bd)
			}
		}

		if taxDateHeadingRe.MatchString(line) {
			continue
		}
		if !containsAny(line, taxLabels) {
			continue
		}
		label := line

		if current == taxRefund {
			var v1, v2 any
			if i+1 < len(lines) {
				if nums := numsIn(strings.TrimSpace(lines[i+1])); len(nums) == 2 {
					if nums[0] > sentinelMax || nums[1] > sentinelMax {
						v1, v2 = nums[0], nums[1]
					}
				}
			}
			out[taxRefund].Append(label, v1, v2, bd)
			continue
		}

		nums := numsIn(line)
		for j := 1; len(nums) < 2 && j <= 2 && i+j < len(lines); j++ {
			nums = append(nums, numsIn(lines[i+j])...)
		}
		if len(nums) < 2 {
			continue
		}
		var v1, v2 any
		if nums[0] > sentinelMax || nums[1] > sentinelMax {
			v1, v2 = nums[0], nums[1]
		}
		switch current {
		case taxByTax:
			out[taxByTax].Append(label, v1, v2, bd)
		case taxExemptTax:
			out[taxExemptTax].Append(label, v1, v2, bd)
		case taxByTxn:
			out[taxByTxn].Append(label, v1, v2, bd)
		}
	}
	return out
}

func taxExtractor(id taxSectionID, cfg Config) func(*domain.Document, domain.Metadata) (*domain.RowSet, error) {
	return func(doc *domain.Document, _ domain.Metadata) (*domain.RowSet, error) {
		return scanTaxExempt(doc, cfg.SentinelMax)[id], nil
	}
}

func taxExemptByTaxSection(cfg Config) Section {
	return Section{
		Name:    "Tax Exempt By Tax",
		Table:   "exempt_revenue_tax",
		Extract: taxExtractor(taxByTax, cfg),
	}
}

func taxExemptTaxSection(cfg Config) Section {
	return Section{
		Name:    "Tax Exempt Tax",
		Table:   "exempt_tax",
		Extract: taxExtractor(taxExemptTax, cfg),
	}
}

func taxExemptByTxnSection(cfg Config) Section {
	return Section{
		Name:    "Tax Exempt By Transaction Code",
		Table:   "tax_exempt_revenue_summary",
		Extract: taxExtractor(taxByTxn, cfg),
	}
}

func taxRefundSection(cfg Config) Section {
	return Section{
		Name:    "Tax Refund",
		Table:   "tax_refund_revenue_summary",
		Extract: taxExtractor(taxRefund, cfg),
	}
}
