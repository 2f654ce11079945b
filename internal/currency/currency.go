// Package currency holds the display and precision rules for the
// currencies a run can generate.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Default is the base currency used when a spec or template leaves the
// currency blank.
const Default = "usd"

// Info describes one supported currency.
type Info struct {
	Code     string
	Symbol   string
	Decimals int32
}

var table = map[string]Info{
	"usd": {Code: "usd", Symbol: "$", Decimals: 2},
	"eur": {Code: "eur", Symbol: "€", Decimals: 2},
	"gbp": {Code: "gbp", Symbol: "£", Decimals: 2},
	"cad": {Code: "cad", Symbol: "C$", Decimals: 2},
	"aud": {Code: "aud", Symbol: "A$", Decimals: 2},
	"jpy": {Code: "jpy", Symbol: "¥", Decimals: 0},
}

// Lookup returns the Info for a currency code.
func Lookup(code string) (Info, bool) {
	info, ok := table[Normalize(code)]
	return info, ok
}

// Known reports whether a currency code is in the table.
func Known(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Normalize lowercases a code and maps blank to the default currency.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Default
	}
	return code
}

// info returns table data for a code, falling back to a two-decimal
// entry that displays the upper-cased code itself.
func info(code string) Info {
	code = Normalize(code)
	if i, ok := table[code]; ok {
		return i
	}
	return Info{Code: code, Symbol: strings.ToUpper(code) + " ", Decimals: 2}
}

// Round quantizes an amount to the currency's decimal places.
func Round(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(info(code).Decimals)
}

// Format renders an amount as sign + symbol + absolute value with the
// currency's decimal places, e.g. -1234.5 in jpy -> "-¥1235".
func Format(amount decimal.Decimal, code string) string {
	i := info(code)
	s := i.Symbol + amount.Abs().StringFixed(i.Decimals)
	if amount.IsNegative() {
		return "-" + s
	}
	return s
}
