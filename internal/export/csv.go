// Package export writes generated transactions to CSV for dry runs,
// so a dataset can be inspected without touching the remote API.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

// Header is the CSV header for exported transactions.
const Header = "date,amount,currency,payee,category_id,asset_id,notes,status"

const (
	numFields     = 8
	colDate       = 0
	colAmount     = 1
	colCurrency   = 2
	colPayee      = 3
	colCategoryID = 4
	colAssetID    = 5
	colNotes      = 6
	colStatus     = 7
)

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = t.Date
	row[colAmount] = t.Amount.String()
	row[colCurrency] = t.Currency
	row[colPayee] = t.Payee
	row[colCategoryID] = strconv.FormatInt(t.CategoryID, 10)
	row[colAssetID] = strconv.FormatInt(t.AssetID, 10)
	row[colNotes] = t.Notes
	row[colStatus] = string(t.Status)
	return row
}

// UnmarshalTransaction converts a CSV row back to a transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	categoryID, err := strconv.ParseInt(record[colCategoryID], 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing category_id %q: %w", record[colCategoryID], err)
	}
	assetID, err := strconv.ParseInt(record[colAssetID], 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing asset_id %q: %w", record[colAssetID], err)
	}

	return model.Transaction{
		Date:       record[colDate],
		Amount:     amount,
		Currency:   record[colCurrency],
		Payee:      record[colPayee],
		CategoryID: categoryID,
		AssetID:    assetID,
		Notes:      record[colNotes],
		Status:     model.TransactionStatus(record[colStatus]),
	}, nil
}

// WriteTransactions writes transactions to w (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTransactions reads all transactions from a CSV reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}
