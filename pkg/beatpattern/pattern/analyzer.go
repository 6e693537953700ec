package pattern

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/tempo"
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// Report is the variant-neutral outcome of one analysis.
type Report struct {
	BPM              float64
	ExpectedInterval float64
	Strategy         string // name of the segmentation strategy used
	Scopes           int

	Short  int
	Medium int
	Long   int
	Bursts int

	PatternCount int
	PatternGaps  int // sum of the lengths of all bucketed runs
	MaxRunLength int

	Density     float64 // peak over scopes
	Consistency float64

	AverageRunLength float64
	Variety          float64
	LongRatio        float64
	Confidence       float64
}

type scopeStats struct {
	short, medium, long, bursts int
	gaps                        int
	maxRun                      int
	density                     float64
	consistency                 float64
	hasJitter                   bool
}

// Analyze runs the full pipeline for one profile.
func Analyze(notes []models.Note, timeline []models.TempoSegment, p Profile) Report {
	bpm := tempo.EstimateBPM(tempo.ReferenceTime(notes, timeline), timeline)
	interval := tempo.BeatLength(bpm) / p.Subdivision

	cfg := segment.Config{
		ExpectedInterval: interval,
		Tolerance:        p.Tolerance,
		DistanceGate:     p.DistanceGate,
	}

	strategy := p.Strategy
	if strategy == nil {
		strategy = segment.Whole{}
	}
	scopes := strategy.Segment(notes, cfg)

	r := Report{
		BPM:              bpm,
		ExpectedInterval: interval,
		Strategy:         strategy.Name(),
		Scopes:           len(scopes),
	}

	var consistencies []float64
	for _, sc := range scopes {
		s := p.scope(sc, interval)

		r.Short += s.short
		r.Medium += s.medium
		r.Long += s.long
		r.Bursts += s.bursts
		r.PatternGaps += s.gaps
		r.MaxRunLength = max(r.MaxRunLength, s.maxRun)
		r.Density = math.Max(r.Density, s.density)
		if s.hasJitter {
			consistencies = append(consistencies, s.consistency)
		}
	}
	if len(consistencies) > 0 {
		r.Consistency = stat.Mean(consistencies, nil)
	}

	r.PatternCount = r.Short + r.Medium + r.Long
	if r.PatternCount > 0 {
		r.AverageRunLength = float64(r.PatternGaps) / float64(r.PatternCount)
	}
	r.Variety = float64(r.Medium*2+r.Long*3) / float64(max(1, r.PatternCount))
	r.LongRatio = float64(r.Long) / float64(max(1, r.PatternCount))
	r.Confidence = p.Weights.Score(r.Density, r.Consistency, r.Variety, r.LongRatio,
		r.AverageRunLength/p.AverageLengthNorm)

	return r
}

func (p Profile) scope(sc segment.Scope, interval float64) scopeStats {
	var s scopeStats

	for _, length := range sc.Lengths {
		if p.BurstMax > 0 && length >= p.BurstMin && length <= p.BurstMax {
			s.bursts++
		}

		bucket := p.Thresholds.Classify(length)
		switch bucket {
		case Short:
			s.short++
		case Medium:
			s.medium++
		case Long:
			s.long++
		}

		if bucket != BelowMinimum {
			s.gaps += length
		}
		if bucket != BelowMinimum || p.MaxOverAllRuns {
			s.maxRun = max(s.maxRun, length)
		}
	}

	if n := sc.Len(); n > 0 {
		s.density = float64(s.gaps) / float64(n)
	}

	if len(sc.Jitter) > 0 {
		s.hasJitter = true
		s.consistency = 1 - stat.Mean(sc.Jitter, nil)/interval
	}

	return s
}

// Score combines the derived metrics. Only the upper end is clamped; a
// negative consistency can pull the score below 0.
func (w Weights) Score(density, consistency, variety, longRatio, averageLength float64) float64 {
	return math.Min(1.0, density*w.Density+
		consistency*w.Consistency+
		variety*w.Variety+
		longRatio*w.LongRatio+
		math.Min(1.0, averageLength)*w.AverageLength)
}
