package statement

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmbiguousAmount is returned for amounts that mix '.' with ',', repeat a separator
	// or look like a dotted thousands group. "1.234,56" and "1.500" are rejected, not guessed.
	ErrAmbiguousAmount = errors.New("ambiguous amount")
	ErrInvalidAmount   = errors.New("invalid amount")
)

var (
	plainNumber    = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
	thousandsGroup = regexp.MustCompile(`^[+-]?\d{1,3}\.\d{3}$`)
)

// ParseAmount normalizes a bank or chat amount into a decimal.
// The "R$" prefix and whitespace are dropped and a single decimal comma becomes a dot.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, "R$", "")
	s = strings.ReplaceAll(s, "r$", "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0, commas > 1, dots > 1, thousandsGroup.MatchString(s):
		return decimal.Zero, ErrAmbiguousAmount
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	}

	if !plainNumber.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromString(strings.TrimPrefix(s, "+"))
}
