package confidence

import "math"

// QualityKind is the judge's classification of how a candidate's
// evidence supports it.
type QualityKind string

const (
	QualityExplicit      QualityKind = "explicit"
	QualityContextual    QualityKind = "contextual"
	QualityWeak          QualityKind = "weak"
	QualityInappropriate QualityKind = "inappropriate"
	QualityUnknown       QualityKind = "unknown"
)

// Quality adjustment bands. Direct multiplication by a mid-range
// quality score punishes reasonable inferences too hard, so the
// contextual and weak kinds get lifted multipliers inside their
// expected score bands.
const (
	contextualLow  = 0.6
	contextualHigh = 0.8
	contextualCap  = 0.85
	contextualLift = 0.15

	weakLow  = 0.3
	weakHigh = 0.5
	weakCap  = 0.65
	weakLift = 0.25
)

// AdjustForQuality scales a candidate's confidence by the quality score
// its supporting evidence earned from the judge.
//
// Contextual evidence scoring in [0.6, 0.8] uses min(0.85, q+0.15) as
// the multiplier; weak evidence scoring in [0.3, 0.5] uses
// min(0.65, q+0.25). Any other kind or score multiplies directly, so
// explicit evidence never receives a lift.
func AdjustForQuality(current, quality float64, kind QualityKind) (float64, error) {
	if err := checkUnit("confidence", current); err != nil {
		return 0, err
	}
	if err := checkUnit("quality score", quality); err != nil {
		return 0, err
	}

	multiplier := quality
	switch {
	case kind == QualityContextual && quality >= contextualLow && quality <= contextualHigh:
		multiplier = math.Min(contextualCap, quality+contextualLift)
	case kind == QualityWeak && quality >= weakLow && quality <= weakHigh:
		multiplier = math.Min(weakCap, quality+weakLift)
	}

	return clamp(current * multiplier), nil
}

// ShouldBlock reports whether a quality score is low enough that the
// candidate should be dropped entirely rather than reconciled.
func ShouldBlock(quality, threshold float64) bool {
	return quality < threshold
}
