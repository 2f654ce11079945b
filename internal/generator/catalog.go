package generator

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// baseItems is the catalog of recurring templates a run draws from, in
// priority order: a run with N items takes the first N.
var baseItems = []model.RecurringItem{
	{Payee: "ABC Company", Amount: amt("3250.00"), Day: 1, Category: "Income", Notes: "Salary Deposit"},
	{Payee: "Freelance Client", Amount: amt("825.50"), Day: 15, Category: "Income", Notes: "Freelance Payment"},
	{Payee: "Oakwood Properties", Amount: amt("-1450.00"), Day: 3, Category: "Housing", Notes: "Rent Payment"},
	{Payee: "Speedy Internet", Amount: amt("-79.99"), Day: 7, Category: "Utilities", Notes: "Internet Bill"},
	{Payee: "MobileTalk", Amount: amt("-85.25"), Day: 12, Category: "Utilities", Notes: "Phone Bill"},
	{Payee: "FitLife Gym", Amount: amt("-45.00"), Day: 18, Category: "Subscriptions", Notes: "Gym Membership"},
	{Payee: "StreamFlix", Amount: amt("-19.99"), Day: 21, Category: "Entertainment", Notes: "Streaming Service"},
	{Payee: "EdFinance", Amount: amt("-315.75"), Day: 24, Category: "Education", Notes: "Student Loan Payment"},
	{Payee: "Safe Auto", Amount: amt("-135.50"), Day: 27, Category: "Transportation", Notes: "Car Insurance"},
	{Payee: "Savings Account", Amount: amt("-200.00"), Day: 30, Category: "Savings", Notes: "Savings Transfer"},
}

// internationalItems holds extra currency-tagged templates, appended
// when a run includes an account in that currency.
var internationalItems = map[string][]model.RecurringItem{
	"eur": {
		{Payee: "Stadtwerke Energie", Amount: amt("-120.00"), Day: 2, Category: "Utilities", Notes: "Electricity Bill", Currency: "eur"},
		{Payee: "EuroMobil", Amount: amt("-39.90"), Day: 9, Category: "Utilities", Notes: "Mobile Plan", Currency: "eur"},
		{Payee: "Kino Abo", Amount: amt("-14.99"), Day: 17, Category: "Entertainment", Notes: "Cinema Subscription", Currency: "eur"},
	},
	"gbp": {
		{Payee: "Thames Water", Amount: amt("-42.50"), Day: 6, Category: "Utilities", Notes: "Water Bill", Currency: "gbp"},
		{Payee: "Oyster Travelcard", Amount: amt("-156.30"), Day: 10, Category: "Transportation", Notes: "Monthly Travelcard", Currency: "gbp"},
		{Payee: "Sky Stream", Amount: amt("-29.99"), Day: 22, Category: "Entertainment", Notes: "TV Subscription", Currency: "gbp"},
	},
	"jpy": {
		{Payee: "Tokyo Metro", Amount: amt("-10000"), Day: 4, Category: "Transportation", Notes: "Commuter Pass", Currency: "jpy"},
		{Payee: "NHK", Amount: amt("-2200"), Day: 11, Category: "Utilities", Notes: "Broadcast Fee", Currency: "jpy"},
		{Payee: "Rakuten Mobile", Amount: amt("-3278"), Day: 16, Category: "Utilities", Notes: "Mobile Plan", Currency: "jpy"},
	},
}

// BaseItems returns the full base template catalog.
func BaseItems() []model.RecurringItem {
	out := make([]model.RecurringItem, len(baseItems))
	copy(out, baseItems)
	return out
}

// InternationalItems returns the template set for a currency, or nil.
func InternationalItems(code string) []model.RecurringItem {
	items := internationalItems[code]
	out := make([]model.RecurringItem, len(items))
	copy(out, items)
	return out
}

// CategorySpec names a category a run needs, and whether it is income.
type CategorySpec struct {
	Name     string
	IsIncome bool
}

// NeededCategories returns every category the catalogs and derived
// liability payments reference, in creation order.
func NeededCategories() []CategorySpec {
	return []CategorySpec{
		{Name: "Income", IsIncome: true},
		{Name: "Housing"},
		{Name: "Utilities"},
		{Name: "Subscriptions"},
		{Name: "Entertainment"},
		{Name: "Education"},
		{Name: "Transportation"},
		{Name: "Savings"},
		{Name: "Credit Card Payment"},
		{Name: "Loan Payment"},
		{Name: "Mortgage Payment"},
	}
}
