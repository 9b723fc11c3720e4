package domain

import "time"

// MessageType discriminates the outbound message envelope.
type MessageType string

const (
	MessageTrendsUpdate   MessageType = "trendsUpdate"
	MessageMetricsUpdate  MessageType = "metricsUpdate"
	MessageActivityUpdate MessageType = "activityUpdate"
	MessageTrendSurge     MessageType = "trendSurge"
	MessageNewTrend       MessageType = "newTrend"
)

// Metrics is the payload of a metricsUpdate message.
type Metrics struct {
	TotalSearches int64 `json:"totalSearches"`
	ActiveUsers   int   `json:"activeUsers"`
	TrendingNow   int   `json:"trendingNow"`
}

// Activity is the payload of an activityUpdate message. Category and Region
// are only set for per-trend activity derived by the classifier.
type Activity struct {
	Message  string   `json:"message"`
	Category Category `json:"category,omitempty"`
	Region   string   `json:"region,omitempty"`
}

// Message is the envelope every subscriber receives. Values are immutable
// after construction; the hub serializes each one exactly once per broadcast.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data,omitempty"`
	Trend     *Trend      `json:"trend,omitempty"`
	Text      string      `json:"message,omitempty"`
}

// NewTrendsUpdate wraps the batch of trends mutated in one refresh tick.
func NewTrendsUpdate(batch []Trend, now time.Time) Message {
	return Message{Type: MessageTrendsUpdate, Timestamp: now, Data: batch}
}

// NewMetricsUpdate wraps aggregate metrics computed in one metrics tick.
func NewMetricsUpdate(m Metrics, now time.Time) Message {
	return Message{Type: MessageMetricsUpdate, Timestamp: now, Data: m}
}

// NewActivityUpdate wraps a human-readable activity notice.
func NewActivityUpdate(a Activity, now time.Time) Message {
	return Message{Type: MessageActivityUpdate, Timestamp: now, Data: a}
}

// NewTrendSurge signals a trend whose growth crossed the surge threshold.
func NewTrendSurge(trend Trend, text string, now time.Time) Message {
	return Message{Type: MessageTrendSurge, Timestamp: now, Trend: &trend, Text: text}
}

// NewTrendCreated announces a freshly created trend.
func NewTrendCreated(trend Trend, text string, now time.Time) Message {
	return Message{Type: MessageNewTrend, Timestamp: now, Trend: &trend, Text: text}
}
