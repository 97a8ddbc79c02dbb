package confidence

import "strings"

// EvidenceKind describes how a new observation relates to an existing
// classification value.
type EvidenceKind string

const (
	Confirming    EvidenceKind = "confirming"
	Contradicting EvidenceKind = "contradicting"
	Neutral       EvidenceKind = "neutral"
)

// Classify compares a stored classification value against a newly
// observed value. Values are trimmed and case-folded before comparison:
// equal values confirm the classification, differing values contradict
// it. Neutral is reserved for evidence that bears on neither side; the
// comparison itself never produces it.
func Classify(existing, observed string) EvidenceKind {
	if normalizeValue(existing) == normalizeValue(observed) {
		return Confirming
	}
	return Contradicting
}

func normalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
