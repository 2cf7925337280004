// Package money formats decimal amounts for display in a store currency and locale.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidLocale   = errors.New("invalid locale")
)

// Languages that write the symbol after the amount, e.g. "1.234,50 €".
var suffixLanguages = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pt": true, "ru": true,
	"pl": true, "cs": true, "sk": true, "sv": true, "fi": true, "nb": true,
	"da": true, "hu": true, "ro": true, "uk": true, "vi": true,
}

// Formatter renders amounts in one currency using one locale's symbol,
// digit grouping and symbol placement.
type Formatter struct {
	code       string
	symbol     string
	suffix     bool
	scale      int
	decimalSep string
	printer    *message.Printer
}

func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, currencyCode)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}

	scale, _ := currency.Standard.Rounding(unit)
	printer := message.NewPrinter(tag)

	return &Formatter{
		code:       unit.String(),
		symbol:     printer.Sprint(currency.Symbol(unit)),
		suffix:     symbolAfter(tag),
		scale:      scale,
		decimalSep: decimalSeparator(printer),
		printer:    printer,
	}, nil
}

func symbolAfter(tag language.Tag) bool {
	base, _ := tag.Base()
	if region, _ := tag.Region(); base.String() == "pt" && region.String() == "BR" {
		return false
	}
	return suffixLanguages[base.String()]
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	return strings.TrimFunc(s, unicode.IsDigit)
}

func (f *Formatter) Currency() string { return f.code }

// Format rounds amount to the currency's standard scale and renders it with the
// currency symbol, e.g. "$1,234.50" for USD in en-US or "1.234,50 €" for EUR
// in de-DE. Digits come from the decimal itself, so large amounts stay exact.
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	rounded := amount.Round(int32(f.scale))
	digits := f.printer.Sprint(number.Decimal(rounded.IntPart()))

	if f.scale > 0 {
		_, frac, _ := strings.Cut(rounded.StringFixed(int32(f.scale)), ".")
		fracPart := decimal.RequireFromString(frac).IntPart()
		digits += f.decimalSep + f.printer.Sprint(number.Decimal(
			fracPart,
			number.NoSeparator(),
			number.MinIntegerDigits(f.scale),
		))
	}

	if f.suffix {
		return sign + digits + " " + f.symbol
	}

	sep := ""
	if r, _ := utf8.DecodeLastRuneInString(f.symbol); unicode.IsLetter(r) {
		sep = " "
	}
	return sign + f.symbol + sep + digits
}

// Format is a one-shot helper; unknown currencies or locales fall back to USD in en-US.
func Format(amount decimal.Decimal, currencyCode, locale string) string {
	f, err := NewFormatter(currencyCode, locale)
	if err != nil {
		f, _ = NewFormatter("USD", "en-US")
	}
	return f.Format(amount)
}
