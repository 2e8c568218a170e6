package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Category is the confidence tier assigned to a single criterion.
type Category string

const (
	CategoryHigh    Category = "High"
	CategoryPartial Category = "Partial"
	CategoryLow     Category = "Low"

	// Classification thresholds. Boundary values belong to the higher
	// category: exactly 0.70 is High, exactly 0.30 is Partial.
	HighThreshold    = 0.70
	PartialThreshold = 0.30
)

var categoryRank = map[Category]int{
	CategoryLow:     0,
	CategoryPartial: 1,
	CategoryHigh:    2,
}

func (c Category) String() string {
	return string(c)
}

// AtLeast returns true if c is at or above the target tier.
func (c Category) AtLeast(target Category) bool {
	return categoryRank[c] >= categoryRank[target]
}

// ParseCategory converts a string flag or config value to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return CategoryHigh, nil
	case "partial":
		return CategoryPartial, nil
	case "low":
		return CategoryLow, nil
	default:
		return CategoryLow, fmt.Errorf("invalid category %q: must be high, partial, or low", s)
	}
}

// Classify maps a raw confidence in [0,1] to a Category. This is the sole
// bridge from continuous evidence to the discrete coverage counts, so every
// criterion must pass through it before aggregation.
func Classify(confidence float64) (Category, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfidence, confidence)
	}
	switch {
	case confidence >= HighThreshold:
		return CategoryHigh, nil
	case confidence >= PartialThreshold:
		return CategoryPartial, nil
	default:
		return CategoryLow, nil
	}
}
