package analytics

import "github.com/abhisek/examprep/internal/examgen"

// Advice is the stable identifier of an advisory message.
type Advice string

const (
	AdviceIncrease Advice = "increase"
	AdviceEasier   Advice = "easier"
	AdviceKeep     Advice = "keep"
)

// Default English advisory messages.
const (
	MessageIncrease = "Increase difficulty for a stronger challenge."
	MessageEasier   = "Focus on easier questions to solidify your foundations."
	MessageKeep     = "Keep practicing at your current level."
)

// Policy holds the advisor thresholds. All comparisons are strict.
type Policy struct {
	// HardAbove forces "hard" when the average score exceeds it.
	HardAbove float64

	// IncreaseAccuracyAbove and IncreaseAverageAbove must both be exceeded
	// for the "increase" message.
	IncreaseAccuracyAbove float64
	IncreaseAverageAbove  float64

	// EasierBelow triggers the "easier" message when either accuracy or
	// average score falls below it.
	EasierBelow float64
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		HardAbove:             80,
		IncreaseAccuracyAbove: 85,
		IncreaseAverageAbove:  85,
		EasierBelow:           60,
	}
}

// Recommendation is the advisor's output for the next question.
type Recommendation struct {
	// Difficulty is what the next question request should use.
	Difficulty examgen.Difficulty

	// Overridden is true when Difficulty differs from the user's selection
	// because of the average-score rule.
	Overridden bool

	Advice  Advice
	Message string
}

// Advisor derives recommendations from overall session statistics.
type Advisor struct {
	policy Policy
}

// NewAdvisor creates an Advisor with the given policy.
func NewAdvisor(p Policy) *Advisor {
	return &Advisor{policy: p}
}

// Recommend applies the policy to snap. The selected difficulty is never
// modified; the override only affects the returned Difficulty.
func (a *Advisor) Recommend(snap Snapshot, selected examgen.Difficulty) Recommendation {
	avg := snap.AverageScore()
	acc := snap.Accuracy()

	rec := Recommendation{Difficulty: selected}
	if avg > a.policy.HardAbove {
		rec.Difficulty = examgen.DifficultyHard
		rec.Overridden = selected != examgen.DifficultyHard
	}

	switch {
	case acc > a.policy.IncreaseAccuracyAbove && avg > a.policy.IncreaseAverageAbove:
		rec.Advice, rec.Message = AdviceIncrease, MessageIncrease
	case acc < a.policy.EasierBelow || avg < a.policy.EasierBelow:
		rec.Advice, rec.Message = AdviceEasier, MessageEasier
	default:
		rec.Advice, rec.Message = AdviceKeep, MessageKeep
	}
	return rec
}
