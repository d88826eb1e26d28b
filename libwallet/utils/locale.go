package utils

import (
	"regexp"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Separators are the decimal and digit grouping marks of a locale.
type Separators struct {
	Decimal string
	Group   string
}

var (
	separatorsMu    sync.Mutex
	separatorsCache = map[string]Separators{}
	groupPatterns   = map[string]*regexp.Regexp{}

	printersMu sync.Mutex
	printers   = map[language.Tag]*message.Printer{}
)

// localePrinter returns the shared printer of tag. Printers are immutable and
// safe for concurrent use.
func localePrinter(tag language.Tag) *message.Printer {
	printersMu.Lock()
	defer printersMu.Unlock()

	p, ok := printers[tag]
	if !ok {
		p = message.NewPrinter(tag)
		printers[tag] = p
	}
	return p
}

// groupPattern returns the compiled pattern matching the grouping mark.
func (s Separators) groupPattern() *regexp.Regexp {
	separatorsMu.Lock()
	defer separatorsMu.Unlock()

	re, ok := groupPatterns[s.Group]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(s.Group))
		groupPatterns[s.Group] = re
	}
	return re
}

// LocaleSeparators discovers the separators a locale uses by formatting a
// sample number with the locale's number formatter. Unknown or empty locales
// fall back to English.
func LocaleSeparators(locale string) Separators {
	separatorsMu.Lock()
	defer separatorsMu.Unlock()

	if seps, ok := separatorsCache[locale]; ok {
		return seps
	}

	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}

	sample := localePrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(1)))
	seps := separatorsFromSample(sample)
	separatorsCache[locale] = seps
	return seps
}

// separatorsFromSample reads the runs of non-digit characters out of a
// formatted 1234567.5. The last run is the decimal mark and any earlier run is
// the grouping mark.
func separatorsFromSample(sample string) Separators {
	var runs []string
	var current []rune
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if len(current) > 0 {
				runs = append(runs, string(current))
				current = current[:0]
			}
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		runs = append(runs, string(current))
	}

	switch len(runs) {
	case 0:
		return Separators{Decimal: "."}
	case 1:
		return Separators{Decimal: runs[0]}
	default:
		decimalSep := runs[len(runs)-1]
		if runs[0] == decimalSep {
			return Separators{Decimal: "."}
		}
		return Separators{Decimal: decimalSep, Group: runs[0]}
	}
}
