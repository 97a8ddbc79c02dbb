package taxonomy

import (
	"fmt"
	"strings"
)

// ValidateValue checks a candidate value against a taxonomy entry.
// Placeholder entries accept any non-empty value; every other entry
// requires a case-insensitive match with the entry's defined value.
// Mismatches are rejected so a hallucinated (ID, value) pairing never
// corrupts a profile.
func ValidateValue(entry Entry, value string) error {
	if entry.Placeholder() {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: taxonomy %s (%s)", ErrEmptyValue, entry.ID, entry.Value())
		}
		return nil
	}

	if !strings.EqualFold(strings.TrimSpace(value), entry.Value()) {
		return fmt.Errorf(
			"%w: taxonomy %s defines %q, got %q",
			ErrValueMismatch, entry.ID, entry.Value(), value,
		)
	}

	return nil
}
