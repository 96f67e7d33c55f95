package privacy

import (
	"fmt"
	"strings"
)

// Level is a sensitivity classification. Levels are totally ordered:
// Low < Medium < High.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// UnknownOrdinal is reported for labels outside the fixed level set.
const UnknownOrdinal = -1

var order = []Level{Low, Medium, High}

// Levels returns the supported levels in ascending order.
func Levels() []Level {
	out := make([]Level, len(order))
	copy(out, order)
	return out
}

// Ordinal returns the position of label in the level order, or
// UnknownOrdinal when the label is not recognised. Matching is exact.
func Ordinal(label Level) int {
	for i, candidate := range order {
		if candidate == label {
			return i
		}
	}
	return UnknownOrdinal
}

// Ordinal returns the level's position in the ordering.
func (l Level) Ordinal() int { return Ordinal(l) }

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool { return Ordinal(l) != UnknownOrdinal }

func (l Level) String() string { return string(l) }

// ParseLevel validates user input (flags, profile records). Input is trimmed
// and lower-cased; anything outside low/medium/high is rejected.
func ParseLevel(raw string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(raw)))
	if !level.Valid() {
		return "", fmt.Errorf("privacy: unknown level %q (want low, medium or high)", raw)
	}
	return level, nil
}
