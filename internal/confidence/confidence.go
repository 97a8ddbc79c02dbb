// Package confidence implements the confidence evolution rules for
// consumer profile classifications: evidence-driven updates, temporal
// decay, and evidence-quality adjustment. All functions are pure; the
// reconciliation engine and workflow layers own state and persistence.
package confidence

import (
	"fmt"
	"math"
)

// Update dampening factors. Confirmations grow confidence toward 1.0
// at 30% of the remaining headroom; contradictions remove at most half
// of the current score in a single step.
const (
	confirmFactor    = 0.3
	contradictFactor = 0.5
)

// ReviewThreshold is the confidence level below which a classification
// should be surfaced for human review.
const ReviewThreshold = 0.5

// DefaultBlockThreshold is the quality score below which a candidate
// classification is dropped before it reaches reconciliation.
const DefaultBlockThreshold = 0.15

// Update applies new evidence to a confidence score.
//
// Confirming evidence: c' = c + (1-c)*s*0.3
// Contradicting evidence: c' = c * (1 - s*0.5)
// Neutral evidence leaves the score unchanged.
//
// Both current and strength must be in [0, 1]; returns ErrInvalidArgument
// otherwise. The result is clamped to [0, 1].
func Update(current, strength float64, kind EvidenceKind) (float64, error) {
	if err := checkUnit("current confidence", current); err != nil {
		return 0, err
	}
	if err := checkUnit("evidence strength", strength); err != nil {
		return 0, err
	}

	var next float64
	switch kind {
	case Confirming:
		next = current + (1-current)*strength*confirmFactor
	case Contradicting:
		next = current * (1 - strength*contradictFactor)
	case Neutral:
		next = current
	default:
		return 0, fmt.Errorf("%w: unknown evidence kind %q", ErrInvalidArgument, kind)
	}

	return clamp(next), nil
}

// Initialize returns the starting confidence for a first observation.
// The first evidence is not "confirming" anything, so its strength is
// taken directly rather than run through the update formula.
func Initialize(strength float64) (float64, error) {
	if err := checkUnit("evidence strength", strength); err != nil {
		return 0, err
	}
	return strength, nil
}

// ApplyTemporalDecay reduces a confidence score by roughly 1% per week
// since the classification was last validated. The decay rate grows
// linearly without bound, so the result is floored at zero.
func ApplyTemporalDecay(current float64, daysSinceValidation int) (float64, error) {
	if err := checkUnit("confidence", current); err != nil {
		return 0, err
	}
	if daysSinceValidation < 0 {
		return 0, fmt.Errorf(
			"%w: days since validation must be >= 0, got %d",
			ErrInvalidArgument, daysSinceValidation,
		)
	}

	rate := 0.01 * (float64(daysSinceValidation) / 7.0)
	return math.Max(0, current*(1-rate)), nil
}

// ShouldReview reports whether a confidence score is uncertain enough
// that the classification should be flagged for review.
func ShouldReview(current float64) bool {
	return current < ReviewThreshold
}

func checkUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0.0, 1.0], got %v", ErrInvalidArgument, name, v)
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
