package pattern

import (
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// Jump analyzes a beatmap for jumps.
type Jump struct {
	beatmap *models.Beatmap
	profile Profile
}

// Option adjusts the profile of an analyzer.
type Option func(*Profile)

// WithStrategy replaces the segmentation strategy.
func WithStrategy(s segment.Strategy) Option {
	return func(p *Profile) {
		p.Strategy = s
	}
}

// NewJump creates a jump analyzer for the given beatmap.
func NewJump(m *models.Beatmap, opts ...Option) *Jump {
	p := JumpProfile()
	for _, opt := range opts {
		opt(&p)
	}
	return &Jump{beatmap: m, profile: p}
}

// Report returns the variant-neutral analysis.
func (j *Jump) Report() Report {
	return Analyze(j.beatmap.Notes, j.beatmap.Timeline, j.profile)
}

// Analyze returns the jump statistics of the beatmap.
func (j *Jump) Analyze() models.JumpAnalysis {
	return JumpFromReport(j.Report())
}

// JumpFromReport maps a jump-profile report onto the stored record.
func JumpFromReport(r Report) models.JumpAnalysis {
	return models.JumpAnalysis{
		OverallConfidence: r.Confidence,
		TotalJumpCount:    r.PatternCount,
		MaxJumpLength:     r.MaxRunLength,
		LongJumps:         r.Long,
		MediumJumps:       r.Medium,
		ShortJumps:        r.Short,
		JumpDensity:       r.Density,
		BPMConsistency:    r.Consistency,
	}
}
