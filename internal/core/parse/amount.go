package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var strictNumericRe = regexp.MustCompile(`^\(?-?\$?\d{1,3}(?:,\d{3})*(?:\.\d{2})?\)?$`)

// Amount converts a monetary token to a number. Thousands separators and
// currency symbols are stripped; a parenthesized value is negative. A nil
// result means "no value", never a failure; callers must not treat it as
// an error.
func Amount(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	neg := strings.Contains(s, "(") && strings.Contains(s, ")")
	s = strings.NewReplacer(",", "", "$", "", "(", "", ")", "").Replace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if neg {
		v = -v
	}
	return &v
}

// AmountIn finds the first amount-shaped run inside free text and decodes
// it, paren-negative convention included.
func AmountIn(text string) *float64 {
	m := amountInRe.FindString(text)
	if m == "" {
		return nil
	}
	return Amount(m)
}

var amountInRe = regexp.MustCompile(`-?\(?[\d,.]+\)?`)

// StrictlyNumeric reports whether the token is exactly an optionally
// parenthesized, comma-grouped, two-decimal numeric literal with no
// residual characters.
func StrictlyNumeric(token string) bool {
	return strictNumericRe.MatchString(strings.TrimSpace(token))
}
