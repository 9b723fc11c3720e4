// Package classify derives notable events from a batch of freshly mutated
// trends. It is purely derivative: it never writes to the store and its only
// output is messages for the broadcast hub.
package classify

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/trendpulse/trendpulse/internal/domain"
)

const (
	// SurgeThreshold is the growth percentage a trend must strictly exceed
	// to count as surging.
	SurgeThreshold float64 = 150

	// activityProbability is the per-trend chance of emitting an ad-hoc
	// activity message per batch.
	activityProbability = 0.30
)

// Source supplies the randomness for probabilistic activity messages.
// Tests inject a fixed source to get deterministic output.
type Source interface {
	Float64() float64
}

// Classifier turns a mutated batch into derived messages.
type Classifier struct {
	src Source
}

func New(src Source) *Classifier {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Classifier{src: src}
}

// Classify inspects a post-mutation batch and returns zero or more derived
// messages, surges first. An empty batch yields nil.
func (c *Classifier) Classify(batch []domain.Trend, now time.Time) []domain.Message {
	if len(batch) == 0 {
		return nil
	}

	var messages []domain.Message

	for _, t := range batch {
		if t.Growth > SurgeThreshold {
			text := fmt.Sprintf("%s is experiencing a surge with %s growth!", t.Title, domain.FormatGrowth(t.Growth))
			messages = append(messages, domain.NewTrendSurge(t, text, now))
		}
	}

	for _, t := range batch {
		if c.src.Float64() >= activityProbability {
			continue
		}
		activity := domain.Activity{
			Message:  fmt.Sprintf("%s search volume is now at %d searches", t.Title, t.Searches),
			Category: t.Category,
			Region:   t.Region,
		}
		messages = append(messages, domain.NewActivityUpdate(activity, now))
	}

	return messages
}
