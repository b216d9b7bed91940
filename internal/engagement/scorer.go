package engagement

import (
	"math"

	"github.com/onchainreach/creator-hub/internal/models"
)

// DefaultMaxScore is the weighted sum that maps to a score of 100
const DefaultMaxScore = 5000.0

// Weights are the per-unit values of each interaction type
type Weights struct {
	Views    float64
	Likes    float64
	Comments float64
	Reposts  float64
}

// DefaultWeights values deeper interactions higher: repost > comment > like > view
var DefaultWeights = Weights{
	Views:    0.1,
	Likes:    1,
	Comments: 3,
	Reposts:  5,
}

// Config tunes the scorer
type Config struct {
	Weights  Weights
	MaxScore float64
}

// Scorer turns raw post metrics into a normalized 0-100 engagement score.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights  Weights
	maxScore float64
}

// Input is either a precomputed score or raw metrics to score.
// When Precomputed is set it is authoritative.
type Input struct {
	Metrics     models.PostMetrics
	Precomputed *int
}

// FromMetrics builds an Input scored from raw metrics
func FromMetrics(m models.PostMetrics) Input {
	return Input{Metrics: m}
}

// FromScore builds an Input carrying a precomputed score
func FromScore(score int) Input {
	return Input{Precomputed: &score}
}

// FromSubmission builds an Input from the metrics stored on a submission
func FromSubmission(s models.Submission) Input {
	return Input{Metrics: s.Metrics.PostMetrics, Precomputed: s.Metrics.EngagementScore}
}

// NewScorer creates a scorer. A zero Weights value or non-positive MaxScore
// falls back to the defaults.
func NewScorer(cfg Config) *Scorer {
	s := &Scorer{weights: cfg.Weights, maxScore: cfg.MaxScore}
	if s.weights == (Weights{}) {
		s.weights = DefaultWeights
	}
	if s.maxScore <= 0 {
		s.maxScore = DefaultMaxScore
	}
	return s
}

// NewDefaultScorer creates a scorer with the default weights and ceiling
func NewDefaultScorer() *Scorer {
	return NewScorer(Config{})
}

// ComputeScore returns the engagement score of m in [0,100]
func (s *Scorer) ComputeScore(m models.PostMetrics) int {
	weighted := float64(m.Views)*s.weights.Views +
		float64(m.Likes)*s.weights.Likes +
		float64(m.Comments)*s.weights.Comments +
		float64(m.Reposts)*s.weights.Reposts

	return clamp(int(math.Round(weighted / s.maxScore * 100)))
}

// Score resolves an Input to a score, preferring a precomputed value
func (s *Scorer) Score(in Input) int {
	if in.Precomputed != nil {
		return clamp(*in.Precomputed)
	}
	return s.ComputeScore(in.Metrics)
}

// AverageScore returns the rounded mean score of inputs, or 0 when empty
func (s *Scorer) AverageScore(inputs []Input) int {
	if len(inputs) == 0 {
		return 0
	}

	total := 0
	for _, in := range inputs {
		total += s.Score(in)
	}

	return int(math.Round(float64(total) / float64(len(inputs))))
}

// Feedback returns the human-readable label for score
func Feedback(score int) string {
	switch {
	case score >= 90:
		return "Exceptional engagement"
	case score >= 75:
		return "High engagement"
	case score >= 50:
		return "Good engagement"
	case score >= 30:
		return "Moderate engagement"
	default:
		return "Low engagement"
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
