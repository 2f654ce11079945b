package generator

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
	"github.com/ledgerseed-dev/ledgerseed/internal/registry"
)

var anchor = time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

func fullRegistries(accountIDs map[string]int64) (*registry.Categories, *registry.Accounts) {
	cats := registry.NewCategories()
	for i, spec := range NeededCategories() {
		cats.Add(spec.Name, int64(i+1))
	}

	accts := registry.NewAccounts()
	accts.SetPrimary(100)
	accts.Register("usd", 100)
	for code, id := range accountIDs {
		accts.Register(code, id)
	}
	return cats, accts
}

func newPipeline(accountIDs map[string]int64) *Pipeline {
	cats, accts := fullRegistries(accountIDs)
	return New(cats, accts, zerolog.Nop())
}

func TestGenerate_TruncatesNotSamples(t *testing.T) {
	p := newPipeline(nil)

	txns, err := p.Generate(Params{Months: 1, Items: 3, Now: anchor})
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Exactly the first three catalog entries, in catalog order.
	assert.Equal(t, "ABC Company", txns[0].Payee)
	assert.Equal(t, "Freelance Client", txns[1].Payee)
	assert.Equal(t, "Oakwood Properties", txns[2].Payee)

	assert.Equal(t, "2025-07-01", txns[0].Date)
	assert.Equal(t, "2025-07-15", txns[1].Date)
	assert.Equal(t, "2025-07-03", txns[2].Date)
}

func TestGenerate_DayClampAcrossMonths(t *testing.T) {
	p := newPipeline(nil)

	// Item 10 is the day-30 savings transfer. Anchor in March so the
	// prior month is February and the clamp is visible.
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	txns, err := p.Generate(Params{Months: 2, Items: 10, Now: march})
	require.NoError(t, err)
	require.Len(t, txns, 20)

	assert.Equal(t, "2025-03-30", txns[9].Date)
	assert.Equal(t, "2025-02-28", txns[19].Date)
}

func TestGenerate_MonthOrderingMostRecentFirst(t *testing.T) {
	p := newPipeline(nil)

	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	txns, err := p.Generate(Params{Months: 3, Items: 1, Now: jan})
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// Offset 0 first, then one month back per group; the year borrows
	// across the January boundary.
	assert.Equal(t, "2025-01-01", txns[0].Date)
	assert.Equal(t, "2024-12-01", txns[1].Date)
	assert.Equal(t, "2024-11-01", txns[2].Date)
}

func TestGenerate_LiabilityPaymentsAppended(t *testing.T) {
	p := newPipeline(nil)

	accounts := []model.AccountSpec{
		{Type: model.AccountChecking, Balance: decimal.NewFromInt(5000)},
		{Type: model.AccountCredit, Balance: decimal.NewFromInt(-850), Rate: decimal.NewFromInt(16)},
		{Type: model.AccountMortgage, Balance: decimal.NewFromInt(-250000)},
	}
	txns, err := p.Generate(Params{Months: 2, Items: 2, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	require.Len(t, txns, 8) // (2 base + 2 payments) * 2 months

	// Within a month: base items first, then payments in account order.
	assert.Equal(t, "Credit Card Payment", txns[2].Payee)
	assert.Equal(t, "Mortgage Payment", txns[3].Payee)
	assert.Equal(t, "2025-07-05", txns[2].Date)
	assert.Equal(t, "2025-07-01", txns[3].Date)
	assert.True(t, txns[2].Amount.IsNegative())
	assert.Equal(t, "Monthly minimum payment", txns[2].Notes)
	assert.Contains(t, txns[3].Notes, "yr")

	// Mortgage payment amount is identical both months; the balance
	// behind it advances with each month offset.
	assert.True(t, txns[3].Amount.Equal(txns[7].Amount))
}

func TestGenerate_PositiveBalanceLiabilitySkipped(t *testing.T) {
	p := newPipeline(nil)

	accounts := []model.AccountSpec{
		{Type: model.AccountCredit, Balance: decimal.NewFromInt(100)}, // paid-off card
	}
	txns, err := p.Generate(Params{Months: 1, Items: 1, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestGenerate_InternationalItems(t *testing.T) {
	p := newPipeline(map[string]int64{"jpy": 9})

	accounts := []model.AccountSpec{
		{Type: model.AccountChecking, Balance: decimal.NewFromInt(3000), Currency: "jpy"},
	}
	txns, err := p.Generate(Params{Months: 1, Items: 9, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	// 9 base + min(3, 9/3) international.
	require.Len(t, txns, 12)

	assert.Equal(t, "Tokyo Metro", txns[9].Payee)
	assert.Equal(t, "jpy", txns[9].Currency)
	assert.Equal(t, int64(9), txns[9].AssetID)
	// Zero-decimal currency: whole yen.
	assert.Equal(t, "-10000", txns[9].Amount.String())
}

func TestGenerate_InternationalLimit(t *testing.T) {
	p := newPipeline(map[string]int64{"eur": 5})

	accounts := []model.AccountSpec{
		{Type: model.AccountSavings, Balance: decimal.NewFromInt(1000), Currency: "eur"},
	}

	// items=4 -> floor(4/3) = 1 international item.
	txns, err := p.Generate(Params{Months: 1, Items: 4, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	require.Len(t, txns, 5)
	assert.Equal(t, "Stadtwerke Energie", txns[4].Payee)

	// items=2 -> floor(2/3) = 0: no international items.
	txns, err = p.Generate(Params{Months: 1, Items: 2, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestGenerate_CurrencyFallbackRouting(t *testing.T) {
	// Registry has a primary but no eur account: eur items route there.
	p := newPipeline(nil)

	accounts := []model.AccountSpec{
		{Type: model.AccountSavings, Balance: decimal.NewFromInt(1000), Currency: "eur"},
	}
	txns, err := p.Generate(Params{Months: 1, Items: 3, Accounts: accounts, Now: anchor})
	require.NoError(t, err)
	require.Len(t, txns, 4)
	assert.Equal(t, int64(100), txns[3].AssetID)
}

func TestGenerate_UnresolvedItemsDropped(t *testing.T) {
	// Empty registries: everything resolves to nothing and is dropped.
	p := New(registry.NewCategories(), registry.NewAccounts(), zerolog.Nop())

	txns, err := p.Generate(Params{Months: 2, Items: 5, Now: anchor})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestGenerate_Validation(t *testing.T) {
	p := newPipeline(nil)

	_, err := p.Generate(Params{Months: 0, Items: 3, Now: anchor})
	assert.Error(t, err)

	_, err = p.Generate(Params{Months: 1, Items: len(BaseItems()) + 1, Now: anchor})
	assert.Error(t, err)
}

func TestPerMonthCount(t *testing.T) {
	accounts := []model.AccountSpec{
		{Type: model.AccountChecking, Balance: decimal.NewFromInt(5000)},
		{Type: model.AccountLoan, Balance: decimal.NewFromInt(-12000)},
		{Type: model.AccountSavings, Balance: decimal.NewFromInt(1000), Currency: "jpy"},
	}
	n := PerMonthCount(Params{Months: 1, Items: 9, Accounts: accounts})
	assert.Equal(t, 13, n) // 9 base + 1 loan + 3 jpy
}
