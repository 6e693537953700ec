// Package pattern scores jump and stream patterns of a beatmap.
package pattern

import (
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
)

// Bucket classifies a run by its gap count.
type Bucket int

const (
	BelowMinimum Bucket = iota
	Short
	Medium
	Long
)

func (b Bucket) String() string {
	switch b {
	case BelowMinimum:
		return "below-minimum"
	case Short:
		return "short"
	case Medium:
		return "medium"
	case Long:
		return "long"
	default:
		return "unknown"
	}
}

// Thresholds are the smallest gap counts of the short, medium and long buckets.
type Thresholds struct {
	Short  int
	Medium int
	Long   int
}

// Classify places a run length into exactly one bucket.
func (t Thresholds) Classify(length int) Bucket {
	switch {
	case length >= t.Long:
		return Long
	case length >= t.Medium:
		return Medium
	case length >= t.Short:
		return Short
	default:
		return BelowMinimum
	}
}

// Weights combine the derived metrics into the overall confidence. They are
// not normalized; the sum saturates at 1.
type Weights struct {
	Density       float64
	Consistency   float64
	Variety       float64
	LongRatio     float64
	AverageLength float64
}

// Profile is everything that distinguishes one pattern type from another.
type Profile struct {
	Name string

	// Subdivision divides the beat length into the expected onset interval.
	Subdivision  float64
	DistanceGate float64
	Tolerance    float64

	Thresholds Thresholds
	Weights    Weights

	// AverageLengthNorm scales the average run length before it is capped at 1.
	AverageLengthNorm float64

	// BurstMin and BurstMax bound the unscored burst count, 0 disables it.
	BurstMin int
	BurstMax int

	// MaxOverAllRuns makes MaxRunLength consider runs below the minimum too.
	MaxOverAllRuns bool

	Strategy segment.Strategy
}

const averageLengthNorm = 3.0

// JumpProfile detects widely spaced half-beat runs.
func JumpProfile() Profile {
	return Profile{
		Name:         "jump",
		Subdivision:  2,
		DistanceGate: segment.DefaultDistanceGate,
		Tolerance:    segment.DefaultTolerance,
		Thresholds:   Thresholds{Short: 4, Medium: 7, Long: 12},
		Weights: Weights{
			Density:       0.4,
			Consistency:   0.2,
			Variety:       0.35,
			LongRatio:     0.45,
			AverageLength: 0.3,
		},
		AverageLengthNorm: averageLengthNorm,
		MaxOverAllRuns:    true,
		Strategy:          segment.NewWindowed(),
	}
}

// StreamProfile detects densely packed quarter-beat runs.
func StreamProfile() Profile {
	return Profile{
		Name:        "stream",
		Subdivision: 4,
		Tolerance:   segment.DefaultTolerance,
		Thresholds:  Thresholds{Short: 6, Medium: 10, Long: 20},
		Weights: Weights{
			Density:       0.3,
			Consistency:   0.2,
			Variety:       0.2,
			LongRatio:     0.2,
			AverageLength: 0.2,
		},
		AverageLengthNorm: averageLengthNorm,
		BurstMin:          3,
		BurstMax:          5,
		Strategy:          segment.Whole{},
	}
}
