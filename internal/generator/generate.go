// Package generator assembles the transaction set for a run: the
// truncated base catalog, derived liability payments, and any
// international items, laid out month by month going back from today.
package generator

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerseed-dev/ledgerseed/internal/amortize"
	"github.com/ledgerseed-dev/ledgerseed/internal/calendar"
	"github.com/ledgerseed-dev/ledgerseed/internal/currency"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
	"github.com/ledgerseed-dev/ledgerseed/internal/registry"
)

// Params configures one generation run.
type Params struct {
	Months       int    // trailing months to fill, ending at Now
	Items        int    // base templates to use, 0..len(BaseItems())
	BaseCurrency string // "" = usd
	Accounts     []model.AccountSpec
	Now          time.Time // anchor date; zero = time.Now()
}

// Validate rejects out-of-range parameters before any work happens.
func (p Params) Validate() error {
	if p.Months < 1 {
		return fmt.Errorf("months must be positive, got %d", p.Months)
	}
	if p.Items < 0 || p.Items > len(baseItems) {
		return fmt.Errorf("items must be 0..%d, got %d", len(baseItems), p.Items)
	}
	return nil
}

// Pipeline turns templates into dated, resolved transactions. Category
// and account identifiers come from the registries built during setup.
type Pipeline struct {
	categories *registry.Categories
	accounts   *registry.Accounts
	log        zerolog.Logger
}

// New creates a Pipeline over the given registries.
func New(categories *registry.Categories, accounts *registry.Accounts, log zerolog.Logger) *Pipeline {
	return &Pipeline{categories: categories, accounts: accounts, log: log}
}

// paymentMeta fixes the template fields for each liability payment type.
var paymentMeta = map[model.AccountType]struct {
	payee    string
	category string
	day      int
}{
	model.AccountCredit:   {payee: "Credit Card Payment", category: "Credit Card Payment", day: 5},
	model.AccountLoan:     {payee: "Loan Payment", category: "Loan Payment", day: 20},
	model.AccountMortgage: {payee: "Mortgage Payment", category: "Mortgage Payment", day: 1},
}

// Generate produces the full transaction list for the run. Output is
// grouped by month offset (most recent month first), then by item order
// within the month: base items, liability payments, international
// items. Items whose category or account cannot be resolved are dropped
// with a diagnostic, never fatally.
func (p *Pipeline) Generate(params Params) ([]model.Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	base := currency.Normalize(params.BaseCurrency)

	selected := baseItems[:params.Items]

	schedules, err := liabilitySchedules(params.Accounts)
	if err != nil {
		return nil, err
	}

	extra := InternationalSelection(params.Accounts, base, params.Items)

	var out []model.Transaction
	for offset := 0; offset < params.Months; offset++ {
		year, month := calendar.MonthAt(now, offset)

		for _, item := range selected {
			p.emit(&out, item, year, month, base)
		}

		// Liability balances advance one payment per month offset, in
		// iteration order. Offset 0 is the most recent month, so each
		// schedule runs from the present backward. Changing this would
		// change every emitted payment split.
		for _, sched := range schedules {
			p.emit(&out, paymentItem(sched, offset), year, month, base)
		}

		for _, item := range extra {
			p.emit(&out, item, year, month, base)
		}
	}

	p.log.Info().
		Int("months", params.Months).
		Int("items", params.Items).
		Int("generated", len(out)).
		Msg("generated transactions")
	return out, nil
}

// PerMonthCount returns how many transactions one month contributes,
// used for previews and progress math.
func PerMonthCount(params Params) int {
	n := params.Items
	for _, spec := range params.Accounts {
		if spec.Type.Liability() && spec.Balance.IsNegative() {
			n++
		}
	}
	return n + len(InternationalSelection(params.Accounts, currency.Normalize(params.BaseCurrency), params.Items))
}

// PreviewPayments derives the current-month payment item for each
// liability account, for offline previews.
func PreviewPayments(specs []model.AccountSpec) ([]model.RecurringItem, error) {
	schedules, err := liabilitySchedules(specs)
	if err != nil {
		return nil, err
	}
	items := make([]model.RecurringItem, 0, len(schedules))
	for _, sched := range schedules {
		items = append(items, paymentItem(sched, 0))
	}
	return items, nil
}

func liabilitySchedules(specs []model.AccountSpec) ([]*amortize.Schedule, error) {
	var schedules []*amortize.Schedule
	for _, spec := range specs {
		if !spec.Type.Liability() || !spec.Balance.IsNegative() {
			continue
		}
		sched, err := amortize.NewSchedule(spec)
		if err != nil {
			return nil, fmt.Errorf("building %s schedule: %w", spec.Type, err)
		}
		schedules = append(schedules, sched)
	}
	return schedules, nil
}

// InternationalSelection picks up to min(3, items/3) templates per
// non-base currency that has a template set, in account order.
func InternationalSelection(specs []model.AccountSpec, base string, items int) []model.RecurringItem {
	limit := items / 3
	if limit > 3 {
		limit = 3
	}
	if limit == 0 {
		return nil
	}

	var out []model.RecurringItem
	seen := make(map[string]bool)
	for _, spec := range specs {
		code := currency.Normalize(spec.Currency)
		if code == base || seen[code] {
			continue
		}
		seen[code] = true

		set := internationalItems[code]
		if len(set) > limit {
			set = set[:limit]
		}
		out = append(out, set...)
	}
	return out
}

// paymentItem derives the month's template for a liability schedule.
// Currency tags carry the owning account's currency so routing posts
// the payment against the right asset.
func paymentItem(sched *amortize.Schedule, offset int) model.RecurringItem {
	meta := paymentMeta[sched.Type()]
	payment := sched.Next()

	notes := "Monthly minimum payment"
	switch sched.Type() {
	case model.AccountLoan:
		notes = fmt.Sprintf("Monthly loan payment (%s remaining)", sched.RemainingTerm(offset))
	case model.AccountMortgage:
		notes = fmt.Sprintf("Monthly mortgage payment (%s remaining)", sched.RemainingTerm(offset))
	}

	return model.RecurringItem{
		Payee:    meta.payee,
		Amount:   payment.Total.Neg(),
		Day:      meta.day,
		Category: meta.category,
		Notes:    notes,
		Currency: sched.Currency(),
	}
}

// emit resolves one item into a transaction and appends it, or logs why
// it was dropped.
func (p *Pipeline) emit(out *[]model.Transaction, item model.RecurringItem, year, month int, base string) {
	categoryID, ok := p.categories.Resolve(item.Category)
	if !ok {
		p.log.Warn().Str("payee", item.Payee).Str("category", item.Category).Msg("dropping item: unresolved category")
		return
	}

	code := item.Currency
	if code == "" {
		code = base
	}
	assetID, ok := p.accounts.Resolve(code)
	if !ok {
		p.log.Warn().Str("payee", item.Payee).Str("currency", code).Msg("dropping item: no account for currency")
		return
	}

	*out = append(*out, model.Transaction{
		Date:       calendar.ResolveDate(year, month, item.Day),
		Amount:     currency.Round(item.Amount, code),
		Payee:      item.Payee,
		CategoryID: categoryID,
		AssetID:    assetID,
		Notes:      item.Notes,
		Currency:   code,
		Status:     model.StatusCleared,
	})
}
