// Package segment splits a note sequence into runs of rhythmically regular
// notes.
package segment

import (
	"math"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	// DefaultTolerance is the accepted relative deviation from the expected interval.
	DefaultTolerance = 0.10

	// DefaultDistanceGate is the minimum spacing for a pair to count as a jump.
	DefaultDistanceGate = 120.0
)

// Config describes what a regular pair of notes looks like.
type Config struct {
	ExpectedInterval float64 // ms between onsets, must be > 0
	Tolerance        float64 // relative, e.g. 0.10
	DistanceGate     float64 // minimum planar distance, 0 disables
}

// Result is the outcome of scanning one stretch of notes.
type Result struct {
	// Lengths holds the number of accepted gaps of every run, which is the
	// run's note count minus one.
	Lengths []int
	// Jitter holds |gap - previous gap| for every interior transition.
	Jitter []float64
}

// Accepts reports whether two consecutive notes continue a run.
func (c Config) Accepts(prev, next models.Note) bool {
	gap := next.StartTime - prev.StartTime
	if math.Abs(gap-c.ExpectedInterval)/c.ExpectedInterval > c.Tolerance {
		return false
	}
	if c.DistanceGate > 0 && float64(prev.DistanceTo(next)) < c.DistanceGate {
		return false
	}
	return true
}

// Scan walks every consecutive pair of notes once, front to back.
func Scan(notes []models.Note, cfg Config) Result {
	var res Result
	run := 0
	prevGap := 0.0

	for i := 1; i < len(notes); i++ {
		prev, next := notes[i-1], notes[i]

		if !cfg.Accepts(prev, next) {
			if run > 0 {
				res.Lengths = append(res.Lengths, run)
				run = 0
			}
			continue
		}

		gap := next.StartTime - prev.StartTime
		run++
		if run > 1 {
			res.Jitter = append(res.Jitter, math.Abs(gap-prevGap))
		}
		prevGap = gap
	}

	if run > 0 {
		res.Lengths = append(res.Lengths, run)
	}

	return res
}
