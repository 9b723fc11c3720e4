package scheduler

import "math/rand/v2"

const (
	maxGrowthDelta    = 5.0
	maxSearchesDelta  = 25_000
	activeUsersBase   = 5_000
	activeUsersSpread = 45_000
)

// DeltaSource supplies the simulated perturbations applied by ticks. The
// production implementation draws bounded random values; tests inject fixed
// ones so tick outcomes can be asserted exactly.
type DeltaSource interface {
	// GrowthDelta returns a delta in [-5, +5] percentage points.
	GrowthDelta() float64
	// SearchesDelta returns a delta in [-25000, +25000].
	SearchesDelta() int64
	// ActiveUsers returns a simulated concurrent-user count.
	ActiveUsers() int
	// PickIndex returns a value in [0, n).
	PickIndex(n int) int
}

type randomDeltas struct {
	rnd *rand.Rand
}

// NewRandomDeltas returns the production delta source. A zero seed draws a
// fresh seed; any other value makes the sequence reproducible.
func NewRandomDeltas(seed uint64) DeltaSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randomDeltas{rnd: rand.New(rand.NewPCG(seed, seed))}
}

func (r *randomDeltas) GrowthDelta() float64 {
	return (r.rnd.Float64()*2 - 1) * maxGrowthDelta
}

func (r *randomDeltas) SearchesDelta() int64 {
	return int64(r.rnd.IntN(2*maxSearchesDelta+1) - maxSearchesDelta)
}

func (r *randomDeltas) ActiveUsers() int {
	return activeUsersBase + r.rnd.IntN(activeUsersSpread)
}

func (r *randomDeltas) PickIndex(n int) int {
	return r.rnd.IntN(n)
}
