package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ledgerseed-dev/ledgerseed/internal/currency"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
	"github.com/ledgerseed-dev/ledgerseed/internal/registry"
)

// accountTemplate holds the fixed remote shape for each account type.
var accountTemplates = map[model.AccountType]struct {
	typeName    string
	subtypeName string
	name        string
}{
	model.AccountChecking:   {typeName: "cash", subtypeName: "checking", name: "Demo Checking Account"},
	model.AccountSavings:    {typeName: "cash", subtypeName: "savings", name: "Demo Savings Account"},
	model.AccountCredit:     {typeName: "credit", subtypeName: "credit card", name: "Demo Credit Card"},
	model.AccountInvestment: {typeName: "investment", subtypeName: "brokerage", name: "Demo Investment Account"},
	model.AccountLoan:       {typeName: "loan", name: "Demo Loan Account"},
	model.AccountCash:       {typeName: "cash", subtypeName: "cash", name: "Demo Cash Account"},
	model.AccountMortgage:   {typeName: "loan", subtypeName: "mortgage", name: "Demo Mortgage Account"},
}

// setup reconciles remote accounts and categories against the run's
// specs: reuse what exists, create what is missing, and build the
// registries the pipeline resolves against. Any remote failure here is
// fatal to the run.
func (s *Seeder) setup(ctx context.Context, params generator.Params, log zerolog.Logger) (*registry.Categories, *registry.Accounts, error) {
	s.obs.Progress(PhaseSetup, "Getting account information...", 10)

	assets, err := s.api.GetAssets(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing accounts: %w", err)
	}

	base := currency.Normalize(params.BaseCurrency)
	accounts := registry.NewAccounts()

	s.obs.Progress(PhaseSetup, "Checking for missing accounts...", 15)
	for _, spec := range params.Accounts {
		code := currency.Normalize(spec.Currency)

		if existing, ok := findAsset(assets, spec.Type, code); ok {
			log.Debug().Str("name", existing.Name).Msg("reusing existing account")
			registerAsset(accounts, spec.Type, code, base, existing.ID)
			continue
		}

		req := assetRequest(spec, base)
		s.obs.Progress(PhaseSetup, fmt.Sprintf("Creating %s...", req.Name), 15)
		id, err := s.api.CreateAsset(ctx, req)
		if err != nil {
			return nil, nil, fmt.Errorf("creating account %q: %w", req.Name, err)
		}
		log.Info().Str("name", req.Name).Int64("asset_id", id).Msg("created account")
		registerAsset(accounts, spec.Type, code, base, id)
	}

	if _, ok := accounts.Primary(); !ok {
		// No checking account in the specs: fall back to whatever asset
		// serves the base currency, if any. Items that then fail to
		// route are dropped per item, not fatally.
		if id, ok := accounts.Resolve(base); ok {
			accounts.SetPrimary(id)
		}
	}

	s.obs.Progress(PhaseSetup, "Setting up categories...", 30)
	categories, err := s.setupCategories(ctx, log)
	if err != nil {
		return nil, nil, err
	}

	s.obs.Progress(PhaseSetup, "Categories ready!", 60)
	return categories, accounts, nil
}

func (s *Seeder) setupCategories(ctx context.Context, log zerolog.Logger) (*registry.Categories, error) {
	existing, err := s.api.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, cat := range existing {
		byName[cat.Name] = cat.ID
	}

	categories := registry.NewCategories()
	progress := 30
	for _, spec := range generator.NeededCategories() {
		if id, ok := byName[spec.Name]; ok {
			s.obs.Progress(PhaseSetup, fmt.Sprintf("Using existing category: %s", spec.Name), progress)
			categories.Add(spec.Name, id)
		} else {
			s.obs.Progress(PhaseSetup, fmt.Sprintf("Creating category: %s...", spec.Name), progress)
			id, err := s.api.CreateCategory(ctx, spec.Name, spec.IsIncome)
			if err != nil {
				return nil, fmt.Errorf("creating category %q: %w", spec.Name, err)
			}
			log.Info().Str("name", spec.Name).Int64("category_id", id).Msg("created category")
			categories.Add(spec.Name, id)
		}
		progress += 2
	}
	return categories, nil
}

// registerAsset wires an asset into the routing registry. A checking
// account wins its currency's route; the base-currency checking account
// also becomes the run's primary. Otherwise the first asset seen per
// currency carries that currency's transactions.
func registerAsset(accounts *registry.Accounts, t model.AccountType, code, base string, id int64) {
	if t == model.AccountChecking {
		if code == base {
			accounts.SetPrimary(id)
		}
		accounts.Register(code, id)
		return
	}
	if !accounts.Registered(code) {
		accounts.Register(code, id)
	}
}

// assetRequest builds the creation request for a spec. Non-base
// currencies get a suffixed name so parallel demo accounts stay
// distinguishable.
func assetRequest(spec model.AccountSpec, base string) model.AssetRequest {
	tmpl := accountTemplates[spec.Type]
	code := currency.Normalize(spec.Currency)

	name := tmpl.name
	if code != base {
		name = fmt.Sprintf("%s (%s)", tmpl.name, strings.ToUpper(code))
	}

	return model.AssetRequest{
		Name:        name,
		TypeName:    tmpl.typeName,
		SubtypeName: tmpl.subtypeName,
		Balance:     spec.Balance,
		Currency:    code,
	}
}

// findAsset matches an existing remote asset to an account type by the
// naming conventions the demo accounts use, scoped to the currency the
// spec wants.
func findAsset(assets []model.Asset, t model.AccountType, code string) (model.Asset, bool) {
	for _, a := range assets {
		if currency.Normalize(a.Currency) != code {
			continue
		}
		if assetType(a) == t {
			return a, true
		}
	}
	return model.Asset{}, false
}

// assetType classifies a remote asset by name, mirroring how the demo
// accounts are named. Unrecognized assets return "".
func assetType(a model.Asset) model.AccountType {
	name := strings.ToLower(a.Name)
	switch {
	case strings.Contains(name, "mortgage"):
		return model.AccountMortgage
	case strings.Contains(name, "loan"):
		return model.AccountLoan
	case strings.Contains(name, "checking"):
		return model.AccountChecking
	case strings.Contains(name, "savings"):
		return model.AccountSavings
	case strings.Contains(name, "credit"):
		return model.AccountCredit
	case strings.Contains(name, "investment"):
		return model.AccountInvestment
	case strings.Contains(name, "cash"):
		return model.AccountCash
	}
	return ""
}
