package app

import (
	"context"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/trendpulse/internal/domain"
	apperrors "github.com/trendpulse/trendpulse/internal/errors"
	"github.com/trendpulse/trendpulse/internal/summary"
	"github.com/trendpulse/trendpulse/internal/trends"
)

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func (b *recordingBroadcaster) Broadcast(msg domain.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
}

func (b *recordingBroadcaster) messages() []domain.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

type stubSummarizer struct {
	summary string
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, _ domain.Category) string {
	s.calls++
	if s.summary == "" {
		return summary.Fallback
	}
	return s.summary
}

func testService(t *testing.T) (*Service, *recordingBroadcaster, *stubSummarizer) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	broadcaster := &recordingBroadcaster{}
	summarizer := &stubSummarizer{summary: "A concise explanation."}
	svc := NewService(trends.NewStore(clock), summarizer, broadcaster, clock)
	return svc, broadcaster, summarizer
}

func validDraft() domain.TrendDraft {
	return domain.TrendDraft{
		Title:     "Foldable Phones",
		Category:  domain.CategoryViral,
		Region:    "global",
		Searches:  250_000,
		Growth:    80,
		Countries: 30,
	}
}

func TestService_CreateTrendBroadcastsNewTrend(t *testing.T) {
	svc, broadcaster, _ := testService(t)

	created, err := svc.CreateTrend(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "A concise explanation.", created.AISummary)
	assert.Equal(t, domain.PredictionWillStabilize, created.Prediction)

	msgs := broadcaster.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageNewTrend, msgs[0].Type)
	require.NotNil(t, msgs[0].Trend)
	assert.Equal(t, created.ID, msgs[0].Trend.ID)
	assert.Equal(t, "New trend detected: Foldable Phones", msgs[0].Text)
}

func TestService_CreateTrendKeepsSuppliedSummary(t *testing.T) {
	svc, _, summarizer := testService(t)

	draft := validDraft()
	draft.AISummary = "Already summarized."

	created, err := svc.CreateTrend(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "Already summarized.", created.AISummary)
	assert.Zero(t, summarizer.calls, "summarizer not consulted when a summary is supplied")
}

func TestService_CreateTrendUsesFallbackSummary(t *testing.T) {
	svc, _, summarizer := testService(t)
	summarizer.summary = "" // stub falls back

	created, err := svc.CreateTrend(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, summary.Fallback, created.AISummary)
}

func TestService_CreateTrendValidation(t *testing.T) {
	svc, broadcaster, _ := testService(t)

	cases := []struct {
		name   string
		mutate func(*domain.TrendDraft)
	}{
		{"missing title", func(d *domain.TrendDraft) { d.Title = "  " }},
		{"unknown category", func(d *domain.TrendDraft) { d.Category = "memes" }},
		{"missing region", func(d *domain.TrendDraft) { d.Region = "" }},
		{"negative countries", func(d *domain.TrendDraft) { d.Countries = -1 }},
		{"unknown prediction", func(d *domain.TrendDraft) { d.Prediction = "will_explode" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			_, err := svc.CreateTrend(context.Background(), draft)
			require.Error(t, err)

			var structured *apperrors.Error
			require.ErrorAs(t, err, &structured)
			assert.Equal(t, apperrors.TypeValidation, structured.Type)
		})
	}

	assert.Empty(t, broadcaster.messages(), "rejected submissions must not broadcast")
}

func TestService_ListTrendsFilters(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()

	sports := validDraft()
	sports.Title = "Marathon Season"
	sports.Category = domain.CategorySports
	sports.Region = "KE"

	_, err := svc.CreateTrend(ctx, validDraft())
	require.NoError(t, err)
	_, err = svc.CreateTrend(ctx, sports)
	require.NoError(t, err)

	all, err := svc.ListTrends(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySports, err := svc.ListTrends(ctx, domain.CategorySports, "")
	require.NoError(t, err)
	require.Len(t, bySports, 1)
	assert.Equal(t, "Marathon Season", bySports[0].Title)

	byRegion, err := svc.ListTrends(ctx, "", "KE")
	require.NoError(t, err)
	require.Len(t, byRegion, 1)
	assert.Equal(t, "Marathon Season", byRegion[0].Title)
}

func TestService_ListTrendsRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.ListTrends(context.Background(), "memes", "")
	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeValidation, structured.Type)
}

func TestService_GetTrendNotFound(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.GetTrend(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrTrendNotFound)
}
