package trends

import (
	"context"
	"fmt"

	"github.com/trendpulse/trendpulse/internal/domain"
)

// seedDrafts is the working set loaded at process start so subscribers
// connecting before the first submission see data immediately.
var seedDrafts = []domain.TrendDraft{
	{
		Title:      "AI Video Generators",
		Category:   domain.CategoryViral,
		Region:     "global",
		Searches:   850_000,
		Growth:     145,
		Countries:  62,
		AISummary:  "Short-form AI video tools are dominating social feeds as creators race to adopt them.",
		Prediction: domain.PredictionWillGrow,
	},
	{
		Title:      "Central Bank Rate Decision",
		Category:   domain.CategoryFinance,
		Region:     "US",
		Searches:   420_000,
		Growth:     38,
		Countries:  24,
		AISummary:  "Markets are pricing in a rate cut ahead of the next policy meeting.",
		Prediction: domain.PredictionWillStabilize,
	},
	{
		Title:      "Champions League Final",
		Category:   domain.CategorySports,
		Region:     "global",
		Searches:   1_200_000,
		Growth:     210,
		Countries:  88,
		AISummary:  "Search interest is surging ahead of the final, led by the two finalist countries.",
		Prediction: domain.PredictionWillFade,
	},
	{
		Title:      "Election Polling Update",
		Category:   domain.CategoryNews,
		Region:     "DE",
		Searches:   310_000,
		Growth:     12,
		Countries:  9,
		AISummary:  "Fresh polling numbers are driving steady interest across German-language media.",
		Prediction: domain.PredictionWillStabilize,
	},
	{
		Title:      "Retro Gaming Revival",
		Category:   domain.CategoryCulture,
		Region:     "JP",
		Searches:   95_000,
		Growth:     -8,
		Countries:  14,
		AISummary:  "Re-releases of classic consoles keep a niche but loyal audience searching.",
		Prediction: domain.PredictionWillFade,
	},
	{
		Title:      "Streaming Series Finale",
		Category:   domain.CategoryViral,
		Region:     "global",
		Searches:   680_000,
		Growth:     74,
		Countries:  51,
		AISummary:  "The season finale sparked a wave of reaction clips and theory threads.",
		Prediction: domain.PredictionWillGrow,
	},
}

// Seed loads the fixed starter trends into the store.
func Seed(ctx context.Context, store *Store) error {
	for _, draft := range seedDrafts {
		if _, err := store.Create(ctx, draft); err != nil {
			return fmt.Errorf("failed to seed trend %q: %w", draft.Title, err)
		}
	}
	return nil
}
