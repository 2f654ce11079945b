package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormat_TwoDecimal(t *testing.T) {
	assert.Equal(t, "-$1234.50", Format(dec("-1234.5"), "usd"))
	assert.Equal(t, "$3250.00", Format(dec("3250"), "usd"))
	assert.Equal(t, "-€950.00", Format(dec("-950"), "eur"))
	assert.Equal(t, "-£42.50", Format(dec("-42.5"), "gbp"))
}

func TestFormat_ZeroDecimal(t *testing.T) {
	// JPY carries no minor unit: amounts round to whole yen.
	assert.Equal(t, "-¥1235", Format(dec("-1234.5"), "jpy"))
	assert.Equal(t, "¥10000", Format(dec("10000"), "jpy"))
}

func TestFormat_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "-XYZ 10.00", Format(dec("-10"), "xyz"))
}

func TestRound(t *testing.T) {
	assert.True(t, dec("-1235").Equal(Round(dec("-1234.5"), "jpy")))
	assert.True(t, dec("19.99").Equal(Round(dec("19.99"), "usd")))
	assert.True(t, dec("0.01").Equal(Round(dec("0.005"), "usd")))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "usd", Normalize(""))
	assert.Equal(t, "jpy", Normalize(" JPY "))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("usd"))
	assert.True(t, Known("JPY"))
	assert.False(t, Known("xyz"))
}
