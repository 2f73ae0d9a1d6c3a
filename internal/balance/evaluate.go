package balance

import "math"

// TargetDuration is the hold time, in seconds, that counts as full completion.
//
// It is fixed regardless of the exercise's own duration; the catalog entries
// declare 12-35 seconds, so completion saturates earlier than the exercise.
const TargetDuration = 10.0

// Score weights for a completed session.
const (
	StabilityWeight  = 0.7
	CompletionWeight = 0.3
)

// Evaluation summarizes a completed balance session.
type Evaluation struct {
	Score           float64  `json:"score"`
	AvgStability    float64  `json:"avg_stability"`
	CompletionRate  float64  `json:"completion_rate"`
	Feedback        []string `json:"feedback"`
	ImprovementTips []string `json:"improvement_tips"`
}

type tier struct {
	min      float64
	feedback string
	tips     []string
}

var tiers = []tier{
	{85, "Outstanding performance!", []string{"Try more challenging exercises."}},
	{70, "Great improvement!", []string{"Focus on holding positions longer."}},
	{50, "Good effort, keep practicing.", []string{"Practice daily for better results.", "Focus on core strength."}},
	{math.Inf(-1), "Keep working at it!", []string{"Start with easier exercises.", "Consider working with a therapist."}},
}

// Evaluate scores a session from its duration in seconds and the per-frame
// stability scores collected by the client.
func Evaluate(duration float64, stabilityScores []float64) Evaluation {
	if len(stabilityScores) == 0 {
		return Evaluation{
			Score:           0,
			Feedback:        []string{"No data recorded"},
			ImprovementTips: []string{},
		}
	}

	var sum float64
	for _, s := range stabilityScores {
		sum += s
	}
	avg := sum / float64(len(stabilityScores))

	completion := math.Min(100, duration/TargetDuration*100)
	overall := avg*StabilityWeight + completion*CompletionWeight

	var chosen tier
	for _, t := range tiers {
		if overall >= t.min {
			chosen = t
			break
		}
	}

	tips := make([]string, len(chosen.tips))
	copy(tips, chosen.tips)

	return Evaluation{
		Score:           Round(overall, 1),
		AvgStability:    Round(avg, 1),
		CompletionRate:  Round(completion, 1),
		Feedback:        []string{chosen.feedback},
		ImprovementTips: tips,
	}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
