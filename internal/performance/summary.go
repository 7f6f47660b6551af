// Package performance turns quiz history into summary statistics and
// advisory recommendations.
package performance

import (
	"slices"

	"github.com/abhisek/lectern/internal/store"
)

const (
	// WeakThreshold is the topic average below which a topic is weak.
	WeakThreshold = 60.0
	// StrongThreshold is the topic average at or above which a topic is strong.
	StrongThreshold = 80.0

	recentWindow = 5
)

// Summary aggregates a learner's quiz attempts. It is derived on demand and
// never stored as a source of truth.
type Summary struct {
	AverageScore  float64            `json:"average_score"`
	TotalAttempts int                `json:"total_attempts"`
	WeakAreas     []string           `json:"weak_areas"`
	StrongAreas   []string           `json:"strong_areas"`
	TopicScores   map[string]float64 `json:"topic_scores,omitempty"`
	RecentScores  []float64          `json:"recent_scores,omitempty"`
}

// Zero returns the summary for a learner with no attempts.
func Zero() Summary {
	return Summary{WeakAreas: []string{}, StrongAreas: []string{}}
}

// IsZero reports whether s carries no performance data at all.
func (s Summary) IsZero() bool {
	return s.TotalAttempts == 0 &&
		s.AverageScore == 0 &&
		len(s.RecentScores) == 0 &&
		len(s.TopicScores) == 0 &&
		len(s.WeakAreas) == 0 &&
		len(s.StrongAreas) == 0
}

// IsWeak reports whether topic is one of the weak areas.
func (s Summary) IsWeak(topic string) bool {
	return slices.Contains(s.WeakAreas, topic)
}

// IsStrong reports whether topic is one of the strong areas.
func (s Summary) IsStrong(topic string) bool {
	return slices.Contains(s.StrongAreas, topic)
}

// Summarize computes a Summary from attempts ordered most recent first.
// Weak and strong areas keep the order in which each topic first appears.
func Summarize(attempts []store.QuizAttempt) Summary {
	if len(attempts) == 0 {
		return Zero()
	}

	var (
		total  float64
		order  []string
		sums   = make(map[string]float64)
		counts = make(map[string]int)
	)
	for _, a := range attempts {
		total += a.Score
		if counts[a.Topic] == 0 {
			order = append(order, a.Topic)
		}
		sums[a.Topic] += a.Score
		counts[a.Topic]++
	}

	s := Zero()
	s.TotalAttempts = len(attempts)
	s.AverageScore = total / float64(len(attempts))
	s.TopicScores = make(map[string]float64, len(order))
	for _, topic := range order {
		avg := sums[topic] / float64(counts[topic])
		s.TopicScores[topic] = avg
		switch {
		case avg < WeakThreshold:
			s.WeakAreas = append(s.WeakAreas, topic)
		case avg >= StrongThreshold:
			s.StrongAreas = append(s.StrongAreas, topic)
		}
	}

	n := min(len(attempts), recentWindow)
	s.RecentScores = make([]float64, n)
	for i := range n {
		s.RecentScores[i] = attempts[i].Score
	}
	return s
}
