package pattern

import (
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// Stream analyzes a beatmap for streams.
type Stream struct {
	beatmap *models.Beatmap
	profile Profile
}

// NewStream creates a stream analyzer for the given beatmap.
func NewStream(m *models.Beatmap, opts ...Option) *Stream {
	p := StreamProfile()
	for _, opt := range opts {
		opt(&p)
	}
	return &Stream{beatmap: m, profile: p}
}

// Report returns the variant-neutral analysis.
func (s *Stream) Report() Report {
	return Analyze(s.beatmap.Notes, s.beatmap.Timeline, s.profile)
}

// Analyze returns the stream statistics of the beatmap.
func (s *Stream) Analyze() models.StreamAnalysis {
	return StreamFromReport(s.Report())
}

// StreamFromReport maps a stream-profile report onto the stored record.
func StreamFromReport(r Report) models.StreamAnalysis {
	return models.StreamAnalysis{
		OverallConfidence: r.Confidence,
		TotalStreamCount:  r.PatternCount,
		ShortStreams:      r.Short,
		MediumStreams:     r.Medium,
		LongStreams:       r.Long,
		Bursts:            r.Bursts,
		MaxStreamLength:   r.MaxRunLength,
		StreamDensity:     r.Density,
		BPMConsistency:    r.Consistency,
	}
}
