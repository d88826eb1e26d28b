package utils

import (
	"strings"
	"unicode"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// ParseAmount parses text typed in the given locale. Grouping marks are
// dropped and the decimal mark is normalised. Unparsable, negative or
// non-finite input, and input in exponent notation, yields zero.
func ParseAmount(text, locale string) float64 {
	d, ok := parseDecimal(text, LocaleSeparators(locale))
	if !ok {
		return 0
	}
	f, _ := d.Float64()
	return finite(f)
}

// ParseSats parses a satoshi amount typed in the given locale, truncating
// any fraction.
func ParseSats(text, locale string) btcutil.Amount {
	d, ok := parseDecimal(text, LocaleSeparators(locale))
	if !ok {
		return 0
	}
	return btcutil.Amount(d.Truncate(0).IntPart())
}

// ParseFiatInput parses a fiat amount typed for currency code. When the
// number of typed fraction digits is one more than the currency uses, the
// last digit was appended to a formatted value and the amount is shifted up
// by ten. One digit fewer means a digit was erased and the amount is shifted
// down by ten.
func (dc DisplayContext) ParseFiatInput(text, code string) float64 {
	seps := dc.Separators()
	d, ok := parseDecimal(text, seps)
	if !ok {
		return 0
	}

	expected := dc.FiatDecimals(code)
	entered := strings.TrimSpace(text)
	typed := -1
	if i := strings.LastIndex(entered, seps.Decimal); i >= 0 {
		typed = countDigits(entered[i+len(seps.Decimal):])
	}

	switch {
	case typed < 0:
	case typed == expected+1:
		d = d.Mul(decimal.NewFromInt(10))
	case typed == expected-1:
		d = d.Div(decimal.NewFromInt(10))
	}

	f, _ := d.Round(int32(expected)).Float64()
	return finite(f)
}

func parseDecimal(text string, seps Separators) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	// decimal accepts exponents, typed amounts never carry one
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}

	if seps.Group != "" {
		s = seps.groupPattern().ReplaceAllString(s, "")
		if isSpaceMark(seps.Group) {
			s = strings.Map(dropSpaces, s)
		}
	}
	if seps.Decimal != "." {
		s = strings.ReplaceAll(s, seps.Decimal, ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func isSpaceMark(sep string) bool {
	for _, r := range sep {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func dropSpaces(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
