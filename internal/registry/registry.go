// Package registry holds the per-run mappings from logical names to
// API-assigned identifiers, built once during setup and read-only for
// the rest of the run.
package registry

import "github.com/ledgerseed-dev/ledgerseed/internal/currency"

// Categories maps category names to remote category IDs.
type Categories struct {
	byName map[string]int64
}

// NewCategories creates an empty category registry.
func NewCategories() *Categories {
	return &Categories{byName: make(map[string]int64)}
}

// Add records a category ID under its name.
func (c *Categories) Add(name string, id int64) {
	c.byName[name] = id
}

// Resolve returns the ID for a category name.
func (c *Categories) Resolve(name string) (int64, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Len returns the number of registered categories.
func (c *Categories) Len() int {
	return len(c.byName)
}

// Accounts routes a transaction's currency code to the asset it should
// post against. Currencies without their own asset fall back to the
// run's primary (base-currency) account.
type Accounts struct {
	byCurrency map[string]int64
	primary    int64
	hasPrimary bool
}

// NewAccounts creates an empty account registry.
func NewAccounts() *Accounts {
	return &Accounts{byCurrency: make(map[string]int64)}
}

// SetPrimary records the run's primary account, the fallback target for
// unrouted currencies.
func (a *Accounts) SetPrimary(id int64) {
	a.primary = id
	a.hasPrimary = true
}

// Primary returns the primary account ID, if one was set.
func (a *Accounts) Primary() (int64, bool) {
	return a.primary, a.hasPrimary
}

// Register records an asset ID for a currency code.
func (a *Accounts) Register(code string, id int64) {
	a.byCurrency[currency.Normalize(code)] = id
}

// Registered reports whether a currency has its own asset, ignoring
// the primary fallback.
func (a *Accounts) Registered(code string) bool {
	_, ok := a.byCurrency[currency.Normalize(code)]
	return ok
}

// Resolve returns the asset ID a transaction in the given currency
// should post to: the currency's own asset when registered, else the
// primary account. ok is false only when neither exists.
func (a *Accounts) Resolve(code string) (int64, bool) {
	if id, ok := a.byCurrency[currency.Normalize(code)]; ok {
		return id, true
	}
	if a.hasPrimary {
		return a.primary, true
	}
	return 0, false
}
