package seeder

import (
	"context"
	"fmt"

	"github.com/ledgerseed-dev/ledgerseed/internal/calendar"
	"github.com/ledgerseed-dev/ledgerseed/internal/generator"
	"github.com/ledgerseed-dev/ledgerseed/internal/model"
)

// detect queries the generated date range and aggregates the API's
// suggested recurring groups, in first-seen order.
func (s *Seeder) detect(ctx context.Context, params generator.Params) ([]model.RecurringPattern, error) {
	s.obs.Progress(PhaseDetect, "Checking recurring detection...", 95)

	year, month := calendar.MonthAt(params.Now, params.Months-1)
	start := calendar.ResolveDate(year, month, 1)
	end := params.Now.Format(calendar.ISODate)

	txns, err := s.api.GetTransactions(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("checking recurring detection: %w", err)
	}

	byGroup := make(map[int64]int) // recurring group -> index in patterns
	var patterns []model.RecurringPattern
	for _, t := range txns {
		if t.RecurringType != "suggested" || t.RecurringID == 0 {
			continue
		}
		idx, ok := byGroup[t.RecurringID]
		if !ok {
			idx = len(patterns)
			byGroup[t.RecurringID] = idx
			patterns = append(patterns, model.RecurringPattern{
				Payee:  t.RecurringPayee,
				Amount: t.RecurringAmount,
			})
		}
		patterns[idx].Count++
	}
	return patterns, nil
}
