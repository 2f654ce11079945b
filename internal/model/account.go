package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType classifies the demo accounts a run can create.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
	AccountCash       AccountType = "cash"
	AccountMortgage   AccountType = "mortgage"
)

// ParseAccountType validates a type string from config.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment,
		AccountLoan, AccountCash, AccountMortgage:
		return AccountType(s), nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Liability reports whether the type carries a debt balance that
// generates a monthly payment.
func (t AccountType) Liability() bool {
	return t == AccountCredit || t == AccountLoan || t == AccountMortgage
}

// AccountSpec describes one demo account to create (or reuse) for a run.
type AccountSpec struct {
	Type       AccountType
	Balance    decimal.Decimal // negative = liability
	Rate       decimal.Decimal // annual percent; zero = type default
	TermMonths int             // remaining term; zero = type default
	Currency   string          // lowercase ISO code; "" = run base currency
}

// Asset is an account as reported by the remote ledger API.
type Asset struct {
	ID          int64
	Name        string
	TypeName    string
	SubtypeName string
	Balance     decimal.Decimal
	Currency    string
}

// AssetRequest describes an account to create remotely.
type AssetRequest struct {
	Name        string
	TypeName    string
	SubtypeName string
	Balance     decimal.Decimal
	Currency    string
}

// Category is a transaction category as reported by the remote ledger API.
type Category struct {
	ID       int64
	Name     string
	IsIncome bool
}

// User identifies the API key owner.
type User struct {
	Name  string
	Email string
}
