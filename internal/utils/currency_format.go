package utils

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormat describes how amounts are rendered for display.
// Stored amounts are always cents; formatting is presentation only.
type CurrencyFormat struct {
	Code     string
	Symbol   string
	Decimals int
	Locale   string
}

// DefaultCurrencyFormat is used when the configuration does not set one.
var DefaultCurrencyFormat = CurrencyFormat{Code: "USD", Symbol: "$", Decimals: 2, Locale: "en-US"}

// FormatMoney renders m with locale digit grouping and decimal separator,
// e.g. 123456 cents -> "$1,234.56" (en-US) or "€1.234,56" (de-DE).
func FormatMoney(m domain.Money, f CurrencyFormat) string {
	tag, err := language.Parse(f.Locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)

	decimals := f.Decimals
	if decimals < 0 {
		decimals = 0
	}
	d := m.Decimal().Round(int32(decimals))
	negative := d.IsNegative()
	d = d.Abs()

	whole := d.IntPart()
	out := p.Sprintf("%d", whole)
	if decimals > 0 {
		frac := d.Sub(decimal.NewFromInt(whole)).Shift(int32(decimals)).IntPart()
		out += decimalSeparator(p) + fmt.Sprintf("%0*d", decimals, frac)
	}

	switch {
	case f.Symbol != "":
		out = f.Symbol + out
	case f.Code != "":
		out = out + " " + f.Code
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatWithPrecision formats a plain amount with the given precision, no grouping.
func FormatWithPrecision(m domain.Money, precision int) string {
	return m.Decimal().Round(int32(precision)).StringFixed(int32(precision))
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	sep := strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
