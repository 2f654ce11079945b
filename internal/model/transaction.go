package model

import "github.com/shopspring/decimal"

// TransactionStatus is the lifecycle state a generated transaction is
// submitted with.
type TransactionStatus string

// StatusCleared marks a transaction as settled; every generated
// transaction is submitted cleared so recurring detection runs on it.
const StatusCleared TransactionStatus = "cleared"

// RecurringItem is an immutable monthly transaction template.
type RecurringItem struct {
	Payee    string
	Amount   decimal.Decimal // major units, signed (negative = expense)
	Day      int             // day of month 1-31, clamped to shorter months
	Category string
	Notes    string
	Currency string // lowercase ISO code; "" = run base currency
}

// Transaction is one generated record, ready for batch submission.
type Transaction struct {
	Date       string // ISO yyyy-mm-dd
	Amount     decimal.Decimal
	Payee      string
	CategoryID int64
	AssetID    int64
	Notes      string
	Currency   string
	Status     TransactionStatus
}

// RemoteTransaction is a transaction as read back from the ledger API,
// including recurring-detection metadata when the API has suggested a
// recurring group for it.
type RemoteTransaction struct {
	ID              int64
	Date            string
	Payee           string
	Amount          decimal.Decimal
	RecurringType   string // "suggested" once detection has flagged it
	RecurringID     int64
	RecurringPayee  string
	RecurringAmount string
}

// RecurringPattern aggregates detected transactions by recurring group.
type RecurringPattern struct {
	Payee  string
	Amount string
	Count  int
}
