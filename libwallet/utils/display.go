package utils

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// SymbolPosition places the currency marker of a formatted fiat amount.
type SymbolPosition string

const (
	// SymbolStart prefixes the currency symbol, "$1.00".
	SymbolStart SymbolPosition = "start"
	// SymbolEnd appends the ISO code, "1.00 USD".
	SymbolEnd SymbolPosition = "end"
	// SymbolNone formats the bare number.
	SymbolNone SymbolPosition = "none"

	USD = "USD"

	defaultFiatDecimals = 2
)

// DisplayContext carries the user's display preferences and the current
// exchange rates used to render amounts.
type DisplayContext struct {
	// Currency is the ISO code of the preferred fiat currency.
	Currency string
	// Locale is a BCP 47 tag selecting number separators.
	Locale string
	// BtcUsdRate is the price of one bitcoin in USD.
	BtcUsdRate float64
	// FiatUsdRates maps an ISO code to the USD price of one unit of that
	// currency. USD is implied to be 1.
	FiatUsdRates map[string]float64
	// SymbolPosition defaults to SymbolEnd.
	SymbolPosition SymbolPosition
	// Decimals overrides the number of fraction digits per ISO code.
	Decimals map[string]int
	// Location formats timestamps, UTC when nil.
	Location *time.Location
}

// DefaultDisplayContext returns a USD, English display context without rates.
func DefaultDisplayContext() DisplayContext {
	return DisplayContext{
		Currency:       USD,
		Locale:         "en",
		SymbolPosition: SymbolEnd,
		Location:       time.UTC,
	}
}

func (dc DisplayContext) currency() string {
	if dc.Currency == "" {
		return USD
	}
	return strings.ToUpper(dc.Currency)
}

// FiatUsdRate returns the USD price of one unit of code, or zero when it is
// not known.
func (dc DisplayContext) FiatUsdRate(code string) float64 {
	code = strings.ToUpper(code)
	if code == USD {
		return 1
	}
	rate, ok := dc.FiatUsdRates[code]
	if !ok || !validRate(rate) {
		return 0
	}
	return rate
}

// BtcToFiatRate returns the price of one bitcoin in the preferred currency,
// or zero when a rate is missing.
func (dc DisplayContext) BtcToFiatRate() float64 {
	fiatUsd := dc.FiatUsdRate(dc.currency())
	if !validRate(dc.BtcUsdRate) || fiatUsd == 0 {
		return 0
	}
	return finite(dc.BtcUsdRate / fiatUsd)
}

// HasRate reports whether live fiat values can be computed.
func (dc DisplayContext) HasRate() bool {
	return dc.BtcToFiatRate() > 0
}

// FiatDecimals returns the number of fraction digits used for code. Overrides
// take precedence over the ISO 4217 standard rounding.
func (dc DisplayContext) FiatDecimals(code string) int {
	code = strings.ToUpper(code)
	if d, ok := dc.Decimals[code]; ok && d >= 0 {
		return d
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return defaultFiatDecimals
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// ParseCurrency validates an ISO 4217 currency code and returns it upper
// cased.
func ParseCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", ErrUnknownCurrency
	}
	return unit.String(), nil
}

// Separators returns the number separators of the display locale.
func (dc DisplayContext) Separators() Separators {
	return LocaleSeparators(dc.Locale)
}

func (dc DisplayContext) locale() language.Tag {
	tag, err := language.Parse(dc.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// CurrencySymbol returns the narrow symbol of code in the display locale,
// falling back to the code itself.
func (dc DisplayContext) CurrencySymbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	return localePrinter(dc.locale()).Sprint(currency.NarrowSymbol(unit))
}

// FormatSats formats a satoshi amount with the locale's grouping, without a
// sign.
func (dc DisplayContext) FormatSats(sats btcutil.Amount) string {
	if sats < 0 {
		sats = -sats
	}
	return groupInteger(int64(sats), dc.Separators()) + " " + SatsUnit
}

// FormatFiat formats amount in the preferred currency.
func (dc DisplayContext) FormatFiat(amount float64) string {
	return dc.FormatFiatIn(amount, dc.currency())
}

// FormatFiatIn formats amount in the currency code, rounding to the
// currency's decimals and placing the currency marker per SymbolPosition.
// The result carries no sign.
func (dc DisplayContext) FormatFiatIn(amount float64, code string) string {
	code = strings.ToUpper(code)
	value := dc.formatFiatNumber(finite(amount), code)

	switch dc.SymbolPosition {
	case SymbolStart:
		return dc.CurrencySymbol(code) + value
	case SymbolNone:
		return value
	default:
		return value + " " + code
	}
}

func (dc DisplayContext) formatFiatNumber(amount float64, code string) string {
	decimals := dc.FiatDecimals(code)
	seps := dc.Separators()

	d := decimal.NewFromFloat(amount).Abs().Round(int32(decimals))
	fixed := d.StringFixed(int32(decimals))

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	if len(intPart) > 15 {
		// beyond float precision, keep the exact digits ungrouped
		return strings.Join(nonEmpty(intPart, fracPart), seps.Decimal)
	}
	return strings.Join(nonEmpty(groupInteger(d.IntPart(), seps), fracPart), seps.Decimal)
}

// groupInteger formats a non-negative n with the locale's grouping mark.
// Locales without a single rune grouping mark are left ungrouped.
func groupInteger(n int64, seps Separators) string {
	if n < 0 || utf8.RuneCountInString(seps.Group) != 1 {
		return strconv.FormatInt(n, 10)
	}
	return humanize.FormatInteger("#"+seps.Group+"###.", int(n))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
