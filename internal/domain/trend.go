package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category is the fixed set of trend categories.
type Category string

const (
	CategoryViral   Category = "viral"
	CategoryNews    Category = "news"
	CategorySports  Category = "sports"
	CategoryFinance Category = "finance"
	CategoryCulture Category = "culture"
)

// Categories lists all valid categories.
var Categories = []Category{CategoryViral, CategoryNews, CategorySports, CategoryFinance, CategoryCulture}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryViral, CategoryNews, CategorySports, CategoryFinance, CategoryCulture:
		return true
	}
	return false
}

// Prediction is the expected trajectory of a trend.
type Prediction string

const (
	PredictionWillGrow      Prediction = "will_grow"
	PredictionWillStabilize Prediction = "will_stabilize"
	PredictionWillFade      Prediction = "will_fade"
)

// Valid reports whether p is a known prediction.
func (p Prediction) Valid() bool {
	switch p {
	case PredictionWillGrow, PredictionWillStabilize, PredictionWillFade:
		return true
	}
	return false
}

const (
	// SearchesFloor is the minimum search volume a trend may carry.
	SearchesFloor int64 = 10_000
	// GrowthMin and GrowthMax bound the growth percentage. The surge
	// threshold in classify depends on these staying put.
	GrowthMin float64 = -50
	GrowthMax float64 = 500
)

// Trend is a tracked topic. Searches and Growth are mutated in place by
// refresh ticks; everything else is fixed at creation.
type Trend struct {
	ID         int64
	Title      string
	Category   Category
	Region     string
	Searches   int64
	Growth     float64
	Countries  int
	AISummary  string
	Prediction Prediction
	IsActive   bool
	CreatedAt  time.Time
}

// trendJSON is the wire shape of a Trend. Growth goes out as a signed
// percentage string, matching what subscribers render verbatim.
type trendJSON struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Category   Category   `json:"category"`
	Region     string     `json:"region"`
	Searches   int64      `json:"searches"`
	Growth     string     `json:"growth"`
	Countries  int        `json:"countries"`
	AISummary  string     `json:"aiSummary"`
	Prediction Prediction `json:"prediction"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (t Trend) MarshalJSON() ([]byte, error) {
	return json.Marshal(trendJSON{
		ID:         t.ID,
		Title:      t.Title,
		Category:   t.Category,
		Region:     t.Region,
		Searches:   t.Searches,
		Growth:     FormatGrowth(t.Growth),
		Countries:  t.Countries,
		AISummary:  t.AISummary,
		Prediction: t.Prediction,
		IsActive:   t.IsActive,
		CreatedAt:  t.CreatedAt,
	})
}

func (t *Trend) UnmarshalJSON(data []byte) error {
	var w trendJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	growth, err := ParseGrowth(w.Growth)
	if err != nil {
		return err
	}
	*t = Trend{
		ID:         w.ID,
		Title:      w.Title,
		Category:   w.Category,
		Region:     w.Region,
		Searches:   w.Searches,
		Growth:     growth,
		Countries:  w.Countries,
		AISummary:  w.AISummary,
		Prediction: w.Prediction,
		IsActive:   w.IsActive,
		CreatedAt:  w.CreatedAt,
	}
	return nil
}

// FormatGrowth renders a growth percentage with an explicit sign, e.g.
// "+200%" or "-12.5%".
func FormatGrowth(growth float64) string {
	s := strconv.FormatFloat(growth, 'f', -1, 64)
	if growth >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// ParseGrowth is the inverse of FormatGrowth. It accepts an optional leading
// sign and an optional trailing percent sign.
func ParseGrowth(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "+"), "%")
	if trimmed == "" {
		return 0, fmt.Errorf("empty growth value")
	}
	growth, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid growth value %q: %w", s, err)
	}
	return growth, nil
}

// TrendDraft carries the fields a caller supplies when creating a trend.
type TrendDraft struct {
	Title      string     `json:"title"`
	Category   Category   `json:"category"`
	Region     string     `json:"region"`
	Searches   int64      `json:"searches"`
	Growth     float64    `json:"growth"`
	Countries  int        `json:"countries"`
	AISummary  string     `json:"aiSummary"`
	Prediction Prediction `json:"prediction"`
}

// TrendChange is a partial mutation. Nil fields are left untouched.
type TrendChange struct {
	Searches *int64
	Growth   *float64
}

// TrendRepository is the storage contract for trends. Implementations must
// serialize writes and hand out consistent snapshots on reads.
type TrendRepository interface {
	List(ctx context.Context) ([]Trend, error)
	ListByCategory(ctx context.Context, category Category) ([]Trend, error)
	ListByRegion(ctx context.Context, region string) ([]Trend, error)
	Get(ctx context.Context, id int64) (Trend, error)
	Create(ctx context.Context, draft TrendDraft) (Trend, error)
	Update(ctx context.Context, id int64, change TrendChange) (Trend, error)
}

// Broadcaster delivers an outbound message to every connected subscriber.
// Delivery is best-effort; failures are handled per connection and never
// surface to the caller.
type Broadcaster interface {
	Broadcast(msg Message)
}
