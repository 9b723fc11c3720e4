package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/trendpulse/trendpulse/internal/domain"
	"github.com/trendpulse/trendpulse/internal/errors"
	"github.com/trendpulse/trendpulse/internal/summary"
)

// Service coordinates the repository, the summarizer boundary, and the
// broadcast hub.
type Service struct {
	repo        domain.TrendRepository
	summarizer  summary.Summarizer
	broadcaster domain.Broadcaster
	clock       clockwork.Clock
}

func NewService(repo domain.TrendRepository, summarizer summary.Summarizer, broadcaster domain.Broadcaster, clock clockwork.Clock) *Service {
	return &Service{
		repo:        repo,
		summarizer:  summarizer,
		broadcaster: broadcaster,
		clock:       clock,
	}
}

// ListTrends returns active trends, optionally filtered by category or
// region. Filters are mutually exclusive; category wins if both are set.
func (s *Service) ListTrends(ctx context.Context, category domain.Category, region string) ([]domain.Trend, error) {
	switch {
	case category != "":
		if !category.Valid() {
			return nil, errors.ValidationError(fmt.Sprintf("unknown category %q", category))
		}
		return s.repo.ListByCategory(ctx, category)
	case region != "":
		return s.repo.ListByRegion(ctx, region)
	default:
		return s.repo.List(ctx)
	}
}

// GetTrend returns a single active trend.
func (s *Service) GetTrend(ctx context.Context, id int64) (domain.Trend, error) {
	return s.repo.Get(ctx, id)
}

// CreateTrend validates a submission, fills in the AI summary, stores the
// trend, and announces it to all subscribers. The newTrend broadcast is
// issued synchronously, so it reaches every currently registered connection
// before the next scheduled tick can fire.
func (s *Service) CreateTrend(ctx context.Context, draft domain.TrendDraft) (domain.Trend, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Trend{}, err
	}

	if strings.TrimSpace(draft.AISummary) == "" {
		draft.AISummary = s.summarizer.Summarize(ctx, draft.Title, draft.Category)
	}
	if draft.Prediction == "" {
		draft.Prediction = domain.PredictionWillStabilize
	}

	trend, err := s.repo.Create(ctx, draft)
	if err != nil {
		return domain.Trend{}, fmt.Errorf("failed to create trend: %w", err)
	}

	text := fmt.Sprintf("New trend detected: %s", trend.Title)
	s.broadcaster.Broadcast(domain.NewTrendCreated(trend, text, s.clock.Now()))

	slog.Info("Trend created", "trend_id", trend.ID, "title", trend.Title, "category", trend.Category)
	return trend, nil
}

func validateDraft(draft domain.TrendDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return errors.ValidationError("title is required")
	}
	if !draft.Category.Valid() {
		return errors.ValidationError(fmt.Sprintf("unknown category %q", draft.Category))
	}
	if strings.TrimSpace(draft.Region) == "" {
		return errors.ValidationError("region is required")
	}
	if draft.Countries < 0 {
		return errors.ValidationError("countries must not be negative")
	}
	if draft.Prediction != "" && !draft.Prediction.Valid() {
		return errors.ValidationError(fmt.Sprintf("unknown prediction %q", draft.Prediction))
	}
	return nil
}
