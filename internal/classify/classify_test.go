package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpulse/trendpulse/internal/domain"
)

// fixedSource returns a constant probability roll.
type fixedSource struct {
	value float64
}

func (s fixedSource) Float64() float64 { return s.value }

func trend(title string, growth float64) domain.Trend {
	return domain.Trend{
		ID:       1,
		Title:    title,
		Category: domain.CategoryViral,
		Region:   "global",
		Searches: 100_000,
		Growth:   growth,
		IsActive: true,
	}
}

func TestClassify_EmptyBatch(t *testing.T) {
	c := New(fixedSource{value: 0})
	assert.Nil(t, c.Classify(nil, time.Now()))
	assert.Nil(t, c.Classify([]domain.Trend{}, time.Now()))
}

func TestClassify_SurgeAboveThreshold(t *testing.T) {
	c := New(fixedSource{value: 1}) // never emit activity
	now := time.Now()

	msgs := c.Classify([]domain.Trend{trend("Solar Eclipse", 200)}, now)

	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageTrendSurge, msgs[0].Type)
	assert.Equal(t, now, msgs[0].Timestamp)
	require.NotNil(t, msgs[0].Trend)
	assert.Equal(t, "Solar Eclipse", msgs[0].Trend.Title)
	assert.Equal(t, "Solar Eclipse is experiencing a surge with +200% growth!", msgs[0].Text)
}

func TestClassify_ThresholdIsStrict(t *testing.T) {
	c := New(fixedSource{value: 1})

	msgs := c.Classify([]domain.Trend{trend("Borderline", SurgeThreshold)}, time.Now())
	assert.Empty(t, msgs)

	msgs = c.Classify([]domain.Trend{trend("Barely", SurgeThreshold + 0.1)}, time.Now())
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageTrendSurge, msgs[0].Type)
}

func TestClassify_ActivityFiresBelowProbability(t *testing.T) {
	c := New(fixedSource{value: 0.1}) // always below 0.30
	now := time.Now()

	msgs := c.Classify([]domain.Trend{trend("Quiet Topic", 10)}, now)

	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageActivityUpdate, msgs[0].Type)

	activity, ok := msgs[0].Data.(domain.Activity)
	require.True(t, ok)
	assert.Contains(t, activity.Message, "Quiet Topic")
	assert.Contains(t, activity.Message, "100000")
	assert.Equal(t, domain.CategoryViral, activity.Category)
	assert.Equal(t, "global", activity.Region)
}

func TestClassify_ActivitySkippedAtProbabilityBoundary(t *testing.T) {
	c := New(fixedSource{value: 0.30}) // roll == probability is a miss

	msgs := c.Classify([]domain.Trend{trend("Boundary", 10)}, time.Now())
	assert.Empty(t, msgs)
}

func TestClassify_SurgesOrderedBeforeActivity(t *testing.T) {
	c := New(fixedSource{value: 0}) // always emit activity

	batch := []domain.Trend{trend("Surging", 300), trend("Steady", 20)}
	msgs := c.Classify(batch, time.Now())

	require.Len(t, msgs, 3)
	assert.Equal(t, domain.MessageTrendSurge, msgs[0].Type)
	assert.Equal(t, domain.MessageActivityUpdate, msgs[1].Type)
	assert.Equal(t, domain.MessageActivityUpdate, msgs[2].Type)
}

func TestClassify_NilSourceStillWorks(t *testing.T) {
	c := New(nil)

	// Only the probabilistic path depends on the source; surges must
	// always come through.
	msgs := c.Classify([]domain.Trend{trend("Deterministic", 400)}, time.Now())
	var surges int
	for _, m := range msgs {
		if m.Type == domain.MessageTrendSurge {
			surges++
		}
	}
	assert.Equal(t, 1, surges)
}
