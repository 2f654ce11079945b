package lunchmoney

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

// Wire shapes. Amounts travel as strings so exact decimal values
// survive the round trip.

type userResponse struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type assetData struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TypeName    string `json:"type_name"`
	SubtypeName string `json:"subtype_name"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
}

type assetsResponse struct {
	Assets []assetData `json:"assets"`
}

type createAssetRequest struct {
	Name        string `json:"name"`
	TypeName    string `json:"type_name"`
	SubtypeName string `json:"subtype_name,omitempty"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
}

type createAssetResponse struct {
	AssetID int64 `json:"asset_id"`
	ID      int64 `json:"id"`
}

type categoryData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

type categoriesResponse struct {
	Categories []categoryData `json:"categories"`
}

type createCategoryRequest struct {
	Name     string `json:"name"`
	IsIncome bool   `json:"is_income"`
}

type createCategoryResponse struct {
	CategoryID int64 `json:"category_id"`
}

type transactionData struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	Payee           string `json:"payee"`
	Amount          string `json:"amount"`
	RecurringType   string `json:"recurring_type"`
	RecurringID     int64  `json:"recurring_id"`
	RecurringPayee  string `json:"recurring_payee"`
	RecurringAmount string `json:"recurring_amount"`
}

type transactionsResponse struct {
	Transactions []transactionData `json:"transactions"`
}

type insertTransaction struct {
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Payee      string `json:"payee"`
	CategoryID int64  `json:"category_id"`
	AssetID    int64  `json:"asset_id"`
	Notes      string `json:"notes"`
	Currency   string `json:"currency,omitempty"`
	Status     string `json:"status"`
}

type insertTransactionsRequest struct {
	Transactions      []insertTransaction `json:"transactions"`
	ApplyRules        bool                `json:"apply_rules"`
	CheckForRecurring bool                `json:"check_for_recurring"`
	DebitAsNegative   bool                `json:"debit_as_negative"`
}

type insertTransactionsResponse struct {
	IDs []int64 `json:"ids"`
}

// GetUser fetches the API key owner.
func (c *Client) GetUser(ctx context.Context) (model.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "me", nil, nil, &resp); err != nil {
		return model.User{}, err
	}
	return model.User{Name: resp.UserName, Email: resp.UserEmail}, nil
}

// GetAssets lists all manually-managed accounts.
func (c *Client) GetAssets(ctx context.Context) ([]model.Asset, error) {
	var resp assetsResponse
	if err := c.do(ctx, http.MethodGet, "assets", nil, nil, &resp); err != nil {
		return nil, err
	}

	assets := make([]model.Asset, 0, len(resp.Assets))
	for _, a := range resp.Assets {
		balance, err := decimal.NewFromString(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("asset %d: parsing balance %q: %w", a.ID, a.Balance, err)
		}
		assets = append(assets, model.Asset{
			ID:          a.ID,
			Name:        a.Name,
			TypeName:    a.TypeName,
			SubtypeName: a.SubtypeName,
			Balance:     balance,
			Currency:    a.Currency,
		})
	}
	return assets, nil
}

// CreateAsset creates an account and returns its ID.
func (c *Client) CreateAsset(ctx context.Context, req model.AssetRequest) (int64, error) {
	var resp createAssetResponse
	err := c.do(ctx, http.MethodPost, "assets", nil, createAssetRequest{
		Name:        req.Name,
		TypeName:    req.TypeName,
		SubtypeName: req.SubtypeName,
		Balance:     req.Balance.StringFixed(2),
		Currency:    req.Currency,
	}, &resp)
	if err != nil {
		return 0, err
	}

	// The API has answered with either asset_id or id across versions.
	id := resp.AssetID
	if id == 0 {
		id = resp.ID
	}
	if id == 0 {
		return 0, fmt.Errorf("creating asset %q: response carried no ID", req.Name)
	}
	return id, nil
}

// GetCategories lists all categories.
func (c *Client) GetCategories(ctx context.Context) ([]model.Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "categories", nil, nil, &resp); err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		categories = append(categories, model.Category{ID: cat.ID, Name: cat.Name, IsIncome: cat.IsIncome})
	}
	return categories, nil
}

// CreateCategory creates a category and returns its ID.
func (c *Client) CreateCategory(ctx context.Context, name string, isIncome bool) (int64, error) {
	var resp createCategoryResponse
	err := c.do(ctx, http.MethodPost, "categories", nil, createCategoryRequest{Name: name, IsIncome: isIncome}, &resp)
	if err != nil {
		return 0, err
	}
	if resp.CategoryID == 0 {
		return 0, fmt.Errorf("creating category %q: response carried no ID", name)
	}
	return resp.CategoryID, nil
}

// GetTransactions lists transactions in an inclusive ISO date range,
// including any recurring-detection metadata the API has attached.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate string) ([]model.RemoteTransaction, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var resp transactionsResponse
	if err := c.do(ctx, http.MethodGet, "transactions", query, nil, &resp); err != nil {
		return nil, err
	}

	txns := make([]model.RemoteTransaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: parsing amount %q: %w", t.ID, t.Amount, err)
		}
		txns = append(txns, model.RemoteTransaction{
			ID:              t.ID,
			Date:            t.Date,
			Payee:           t.Payee,
			Amount:          amount,
			RecurringType:   t.RecurringType,
			RecurringID:     t.RecurringID,
			RecurringPayee:  t.RecurringPayee,
			RecurringAmount: t.RecurringAmount,
		})
	}
	return txns, nil
}

// CreateTransactions inserts a batch of transactions with rule
// application and recurring detection enabled, returning the new IDs.
// Callers cap batches at 500; the API rejects larger ones.
func (c *Client) CreateTransactions(ctx context.Context, txns []model.Transaction) ([]int64, error) {
	req := insertTransactionsRequest{
		Transactions:      make([]insertTransaction, 0, len(txns)),
		ApplyRules:        true,
		CheckForRecurring: true,
		DebitAsNegative:   true,
	}
	for _, t := range txns {
		req.Transactions = append(req.Transactions, insertTransaction{
			Date:       t.Date,
			Amount:     t.Amount.String(),
			Payee:      t.Payee,
			CategoryID: t.CategoryID,
			AssetID:    t.AssetID,
			Notes:      t.Notes,
			Currency:   t.Currency,
			Status:     string(t.Status),
		})
	}

	var resp insertTransactionsResponse
	if err := c.do(ctx, http.MethodPost, "transactions", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.IDs, nil
}
