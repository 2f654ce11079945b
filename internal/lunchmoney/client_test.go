package lunchmoney

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

func TestGetUser_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"user_name":  "Demo User",
			"user_email": "demo@example.com",
		})
	}))
	defer srv.Close()

	client := NewClient("secret-key", WithBaseURL(srv.URL))
	user, err := client.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Demo User", user.Name)
	assert.Equal(t, "demo@example.com", user.Email)
}

func TestDo_ErrorTextExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Access token does not exist."}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.GetUser(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Access token does not exist")
	assert.Equal(t, "me", apiErr.Endpoint)
	assert.True(t, apiErr.Auth())
}

func TestCreateAsset_IDFieldFallback(t *testing.T) {
	var gotBalance string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotBalance = body["balance"].(string)
		// Older responses used "id" instead of "asset_id".
		json.NewEncoder(w).Encode(map[string]int64{"id": 77})
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	id, err := client.CreateAsset(context.Background(), model.AssetRequest{
		Name:     "Demo Checking Account",
		TypeName: "cash",
		Balance:  decimal.RequireFromString("5000"),
		Currency: "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), id)
	assert.Equal(t, "5000.00", gotBalance)
}

func TestGetTransactions_QueryAndRecurringMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-07-14", r.URL.Query().Get("end_date"))
		json.NewEncoder(w).Encode(map[string]any{
			"transactions": []map[string]any{
				{
					"id": 1, "date": "2025-06-03", "payee": "Oakwood Properties",
					"amount": "-1450.0000", "recurring_type": "suggested",
					"recurring_id": 55, "recurring_payee": "Oakwood Properties",
					"recurring_amount": "-1450.00",
				},
				{"id": 2, "date": "2025-06-07", "payee": "One-Off", "amount": "-12.3400"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	txns, err := client.GetTransactions(context.Background(), "2025-01-01", "2025-07-14")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "suggested", txns[0].RecurringType)
	assert.Equal(t, int64(55), txns[0].RecurringID)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("-1450")))
	assert.Empty(t, txns[1].RecurringType)
}

func TestCreateTransactions_BodyFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body insertTransactionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.ApplyRules)
		assert.True(t, body.CheckForRecurring)
		assert.True(t, body.DebitAsNegative)
		require.Len(t, body.Transactions, 1)
		assert.Equal(t, "-1450", body.Transactions[0].Amount)
		assert.Equal(t, "cleared", body.Transactions[0].Status)
		json.NewEncoder(w).Encode(map[string][]int64{"ids": {101}})
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL))
	ids, err := client.CreateTransactions(context.Background(), []model.Transaction{
		{
			Date:       "2025-07-03",
			Amount:     decimal.RequireFromString("-1450"),
			Payee:      "Oakwood Properties",
			CategoryID: 3,
			AssetID:    9,
			Notes:      "Rent Payment",
			Currency:   "usd",
			Status:     model.StatusCleared,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, ids)
}
