package performance

import "fmt"

// Kind names a recommendation rule.
type Kind string

const (
	KindReview    Kind = "review"
	KindFastTrack Kind = "fast_track"
	KindFocus     Kind = "focus"
	KindTrend     Kind = "trend"
)

// Recommendation is one advisory message for the learner.
type Recommendation struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

const (
	reviewBelow    = 50.0
	fastTrackAbove = 80.0
	trendWindow    = 3
	trendBelow     = 60.0
)

// Recommend evaluates every rule against s in a fixed order. A learner with
// no history gets no recommendations.
func Recommend(s Summary, topic string) []Recommendation {
	if s.IsZero() {
		return nil
	}

	var recs []Recommendation
	if s.AverageScore < reviewBelow {
		recs = append(recs, Recommendation{
			Kind:    KindReview,
			Message: "Consider reviewing previous lessons before moving forward",
			Action:  "suggest_review",
		})
	} else if s.AverageScore >= fastTrackAbove {
		recs = append(recs, Recommendation{
			Kind:    KindFastTrack,
			Message: "Great progress! You're ready for advanced topics",
			Action:  "suggest_advanced",
		})
	}

	if s.IsWeak(topic) {
		recs = append(recs, Recommendation{
			Kind:    KindFocus,
			Message: fmt.Sprintf("Focus on strengthening your understanding of %s", topic),
			Action:  "suggest_practice",
		})
	}

	if len(s.RecentScores) >= trendWindow {
		var sum float64
		for _, v := range s.RecentScores[:trendWindow] {
			sum += v
		}
		if sum/trendWindow < trendBelow {
			recs = append(recs, Recommendation{
				Kind:    KindTrend,
				Message: "Your recent performance shows a declining trend. Consider taking a break and reviewing fundamentals",
				Action:  "suggest_break",
			})
		}
	}
	return recs
}
