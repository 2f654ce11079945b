// Package seeder drives a full demo-data run against the ledger API:
// validate the key, reconcile accounts and categories, generate the
// transaction set, submit it in batches, and report what the API's
// recurring detection picked up.
package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerseed-dev/ledgerseed/internal/calendar"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

// BatchSize caps one transaction-creation call. The pipeline itself
// never caps; the submitter chunks.
const BatchSize = 500

// API is the ledger collaborator a run drives. *lunchmoney.Client
// satisfies it; tests substitute a fake.
type API interface {
	GetUser(ctx context.Context) (model.User, error)
	GetAssets(ctx context.Context) ([]model.Asset, error)
	CreateAsset(ctx context.Context, req model.AssetRequest) (int64, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string, isIncome bool) (int64, error)
	GetTransactions(ctx context.Context, startDate, endDate string) ([]model.RemoteTransaction, error)
	CreateTransactions(ctx context.Context, txns []model.Transaction) ([]int64, error)
}

// Phase labels a stage of the run for progress reporting.
type Phase string

const (
	PhaseStart    Phase = "start"
	PhaseSetup    Phase = "setup"
	PhaseGenerate Phase = "generate"
	PhaseSubmit   Phase = "insert"
	PhaseDetect   Phase = "check"
	PhaseComplete Phase = "complete"
	PhaseError    Phase = "error"
)

// Observer receives progress events. Implementations render them
// however they like; the seeder never prints.
type Observer interface {
	Progress(phase Phase, message string, percent int)
}

// NopObserver discards all progress events.
type NopObserver struct{}

// Progress implements Observer.
func (NopObserver) Progress(Phase, string, int) {}

// Result summarizes a run. On a failed run the counts reflect what was
// completed before the failure; earlier batches stay created.
type Result struct {
	RunID     string
	User      model.User
	Months    int
	Items     int
	Generated int
	Created   int
	Patterns  []model.RecurringPattern
}

// Seeder runs the five phases against an API collaborator.
type Seeder struct {
	api API
	obs Observer
	log zerolog.Logger
	now func() time.Time
}

// New creates a Seeder. A nil observer is replaced with NopObserver.
func New(api API, obs Observer, log zerolog.Logger) *Seeder {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Seeder{api: api, obs: obs, log: log, now: time.Now}
}

// ValidateKey checks the API key by fetching its owner.
func (s *Seeder) ValidateKey(ctx context.Context) (model.User, error) {
	user, err := s.api.GetUser(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("validating API key: %w", err)
	}
	return user, nil
}

// ExistingTransactionCount reports how many transactions the account
// already holds over the trailing year, so a caller can warn before
// seeding a non-empty account.
func (s *Seeder) ExistingTransactionCount(ctx context.Context) (int, error) {
	now := s.now()
	start := now.AddDate(-1, 0, 0).Format(calendar.ISODate)
	end := now.Format(calendar.ISODate)

	txns, err := s.api.GetTransactions(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("checking existing transactions: %w", err)
	}
	return len(txns), nil
}

// Run executes a full seed. Setup-phase failures abort before anything
// is generated; submission failures return the partial result alongside
// the error.
func (s *Seeder) Run(ctx context.Context, params generator.Params) (*Result, error) {
	result := &Result{
		RunID:  uuid.NewString(),
		Months: params.Months,
		Items:  params.Items,
	}
	log := s.log.With().Str("run_id", result.RunID).Logger()

	if err := params.Validate(); err != nil {
		return result, err
	}
	if params.Now.IsZero() {
		params.Now = s.now()
	}

	s.obs.Progress(PhaseStart, "Starting transaction generation...", 0)

	user, err := s.ValidateKey(ctx)
	if err != nil {
		s.obs.Progress(PhaseError, err.Error(), 0)
		return result, err
	}
	result.User = user

	categories, accounts, err := s.setup(ctx, params, log)
	if err != nil {
		s.obs.Progress(PhaseError, err.Error(), 0)
		return result, fmt.Errorf("setup: %w", err)
	}

	s.obs.Progress(PhaseGenerate, "Generating transactions...", 70)
	txns, err := generator.New(categories, accounts, log).Generate(params)
	if err != nil {
		s.obs.Progress(PhaseError, err.Error(), 0)
		return result, err
	}
	result.Generated = len(txns)

	if err := s.submit(ctx, txns, result); err != nil {
		s.obs.Progress(PhaseError, err.Error(), 0)
		return result, err
	}

	patterns, err := s.detect(ctx, params)
	if err != nil {
		s.obs.Progress(PhaseError, err.Error(), 0)
		return result, err
	}
	result.Patterns = patterns

	s.obs.Progress(PhaseComplete, "Generation complete!", 100)
	log.Info().
		Int("generated", result.Generated).
		Int("created", result.Created).
		Int("patterns", len(result.Patterns)).
		Msg("seed run complete")
	return result, nil
}

// submit sends transactions in order, BatchSize at a time. A failing
// batch aborts the rest; prior batches stay created and counted.
func (s *Seeder) submit(ctx context.Context, txns []model.Transaction, result *Result) error {
	totalBatches := (len(txns) + BatchSize - 1) / BatchSize

	for i := 0; i < len(txns); i += BatchSize {
		end := i + BatchSize
		if end > len(txns) {
			end = len(txns)
		}
		batch := txns[i:end]
		batchNum := i/BatchSize + 1

		s.obs.Progress(PhaseSubmit,
			fmt.Sprintf("Creating batch %d/%d (%d transactions)...", batchNum, totalBatches, len(batch)),
			80+batchNum*15/max(totalBatches, 1))

		ids, err := s.api.CreateTransactions(ctx, batch)
		if err != nil {
			return fmt.Errorf("submitting batch %d/%d: %w", batchNum, totalBatches, err)
		}
		result.Created += len(ids)
	}
	return nil
}
