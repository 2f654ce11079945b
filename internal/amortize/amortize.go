// Package amortize computes the monthly payment schedules for the
// liability accounts a run simulates: credit-card minimum payments and
// fixed-payment loan/mortgage amortization. All arithmetic is exact
// decimal; binary floats would drift at the cent level over a long
// simulated range.
package amortize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

var (
	one        = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
	daysInYear = decimal.NewFromInt(365)
	thirty     = decimal.NewFromInt(30)

	minPaymentRate  = decimal.RequireFromString("0.03")
	minPaymentFloor = decimal.NewFromInt(25)
)

// Type-specific defaults applied when a spec omits rate or term.
var (
	defaultCreditRate   = decimal.NewFromInt(16)
	defaultLoanRate     = decimal.NewFromInt(10)
	defaultLoanTerm     = 60
	defaultMortgageRate = decimal.NewFromInt(7)
	defaultMortgageTerm = 360
)

// Payment is the scheduled payment for one simulated month.
type Payment struct {
	Total     decimal.Decimal // always positive
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Balance   decimal.Decimal // outstanding balance after the payment
}

// Schedule tracks one liability account across a generation run. The
// balance advances one payment per Next call, in the same order the
// pipeline iterates month offsets (most recent month first), so the
// schedule amortizes backwards in calendar time.
type Schedule struct {
	accountType model.AccountType
	currency    string
	original    decimal.Decimal // abs of starting balance
	balance     decimal.Decimal
	annualRate  decimal.Decimal // percent
	monthlyRate decimal.Decimal
	termMonths  int
	payment     decimal.Decimal // fixed annuity payment; zero for credit
}

// NewSchedule builds a schedule for a liability spec, applying type
// defaults for missing rate/term: credit 16%, loan 10%/60mo, mortgage
// 7%/360mo. Returns an error for non-liability types.
func NewSchedule(spec model.AccountSpec) (*Schedule, error) {
	if !spec.Type.Liability() {
		return nil, fmt.Errorf("account type %q has no payment schedule", spec.Type)
	}

	s := &Schedule{
		accountType: spec.Type,
		currency:    spec.Currency,
		original:    spec.Balance.Abs(),
		balance:     spec.Balance.Abs(),
		annualRate:  spec.Rate,
		termMonths:  spec.TermMonths,
	}

	switch spec.Type {
	case model.AccountCredit:
		if s.annualRate.IsZero() {
			s.annualRate = defaultCreditRate
		}
	case model.AccountLoan:
		if s.annualRate.IsZero() {
			s.annualRate = defaultLoanRate
		}
		if s.termMonths == 0 {
			s.termMonths = defaultLoanTerm
		}
	case model.AccountMortgage:
		if s.annualRate.IsZero() {
			s.annualRate = defaultMortgageRate
		}
		if s.termMonths == 0 {
			s.termMonths = defaultMortgageTerm
		}
	}

	if spec.Type != model.AccountCredit {
		s.monthlyRate = s.annualRate.Div(hundred).Div(twelve)
		s.payment = annuityPayment(s.original, s.monthlyRate, s.termMonths)
	}

	return s, nil
}

// annuityPayment computes the fixed monthly payment
// P*i*(1+i)^n / ((1+i)^n - 1), falling back to straight-line P/n when
// the rate is zero. A zero term is guarded to 1 rather than surfacing a
// division by zero.
func annuityPayment(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths < 1 {
		termMonths = 1
	}
	n := decimal.NewFromInt(int64(termMonths))
	if monthlyRate.IsZero() {
		return principal.Div(n)
	}
	pow := one.Add(monthlyRate).Pow(n)
	return principal.Mul(monthlyRate).Mul(pow).Div(pow.Sub(one))
}

// Type returns the liability account type the schedule belongs to.
func (s *Schedule) Type() model.AccountType { return s.accountType }

// Currency returns the owning account's currency code ("" = run base).
func (s *Schedule) Currency() string { return s.currency }

// Balance returns the current outstanding balance.
func (s *Schedule) Balance() decimal.Decimal { return s.balance }

// FixedPayment returns the constant annuity payment for loan/mortgage
// schedules; zero for credit cards, whose payment varies.
func (s *Schedule) FixedPayment() decimal.Decimal { return s.payment }

// Next returns the payment for the next simulated month and advances
// the schedule's balance.
func (s *Schedule) Next() Payment {
	if s.accountType == model.AccountCredit {
		return s.creditPayment()
	}
	return s.amortizedPayment()
}

// creditPayment is the monthly minimum: 3% of the balance (floor $25)
// plus an interest charge from daily compounding over a 30-day cycle.
// The credit balance is deliberately not paid down: each month restates
// the same revolving balance, so every Next returns the same payment.
func (s *Schedule) creditPayment() Payment {
	dailyRate := s.annualRate.Div(hundred).Div(daysInYear)
	effectiveMonthly := one.Add(dailyRate).Pow(thirty).Sub(one)
	interest := s.balance.Mul(effectiveMonthly)

	base := s.balance.Mul(minPaymentRate)
	if base.LessThan(minPaymentFloor) {
		base = minPaymentFloor
	}

	return Payment{
		Total:     base.Add(interest),
		Interest:  interest,
		Principal: base,
		Balance:   s.balance,
	}
}

// amortizedPayment applies the fixed payment to the running balance:
// interest accrues on the current balance, the remainder retires
// principal, and the balance floors at zero once paid off.
func (s *Schedule) amortizedPayment() Payment {
	interest := s.balance.Mul(s.monthlyRate)
	principal := s.payment.Sub(interest)

	next := s.balance.Sub(principal)
	if next.IsNegative() {
		next = decimal.Zero
	}
	s.balance = next

	return Payment{
		Total:     s.payment,
		Interest:  interest,
		Principal: principal,
		Balance:   s.balance,
	}
}

// RemainingTerm renders the term left at a given month offset as
// "Yyr Mmo" for transaction notes. Display only; never fed back into
// the payment math.
func (s *Schedule) RemainingTerm(offset int) string {
	months := s.termMonths - offset
	if months < 0 {
		months = 0
	}
	return fmt.Sprintf("%dyr %dmo", months/12, months%12)
}
