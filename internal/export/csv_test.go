package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			Date:       "2025-07-03",
			Amount:     decimal.RequireFromString("-1450"),
			Currency:   "usd",
			Payee:      "Oakwood Properties",
			CategoryID: 2,
			AssetID:    100,
			Notes:      "Rent Payment",
			Status:     model.StatusCleared,
		},
		{
			Date:       "2025-07-04",
			Amount:     decimal.RequireFromString("-10000"),
			Currency:   "jpy",
			Payee:      "Tokyo Metro",
			CategoryID: 7,
			AssetID:    9,
			Notes:      "Commuter Pass",
			Status:     model.StatusCleared,
		},
	}
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sampleTxns()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])

	back, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "Oakwood Properties", back[0].Payee)
	assert.True(t, back[0].Amount.Equal(decimal.RequireFromString("-1450")))
	assert.Equal(t, model.StatusCleared, back[1].Status)
	assert.Equal(t, int64(9), back[1].AssetID)
}

func TestRead_EmptyAndHeaderOnly(t *testing.T) {
	txns, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, txns)

	txns, err = ReadTransactions(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestUnmarshal_BadRow(t *testing.T) {
	_, err := UnmarshalTransaction([]string{"2025-07-03", "notanumber", "usd", "X", "1", "1", "", "cleared"})
	assert.Error(t, err)

	_, err = UnmarshalTransaction([]string{"too", "short"})
	assert.Error(t, err)
}
