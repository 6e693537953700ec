package beatpattern

import (
	"time"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/pattern"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/tempo"
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// AnalyzeBeatmap runs both pattern analyzers over m. It never fails; an empty
// beatmap yields zero results.
func AnalyzeBeatmap(m *models.Beatmap, opts ...Option) *models.AnalysisResult {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	res, _, _ := analyze(m, cfg)
	return res
}

// analyze also hands back the per-variant reports for logging.
func analyze(m *models.Beatmap, cfg *Config) (*models.AnalysisResult, pattern.Report, pattern.Report) {
	jump := pattern.NewJump(m, strategyOption(cfg.JumpStrategy, cfg.Workers)...).Report()
	stream := pattern.NewStream(m, strategyOption(cfg.StreamStrategy, cfg.Workers)...).Report()

	res := &models.AnalysisResult{
		Metadata:  m.Metadata,
		NoteCount: len(m.Notes),
		BPM:       tempo.FromBeatmap(m),
		Jump:      pattern.JumpFromReport(jump),
		Stream:    pattern.StreamFromReport(stream),
		CreatedAt: time.Now(),
	}
	return res, jump, stream
}

// strategyOption applies a configured strategy, or the worker count to the
// profile's default windowed strategy.
func strategyOption(s segment.Strategy, workers int) []pattern.Option {
	if s != nil {
		return []pattern.Option{pattern.WithStrategy(withWorkers(s, workers))}
	}
	return []pattern.Option{func(p *pattern.Profile) {
		p.Strategy = withWorkers(p.Strategy, workers)
	}}
}

func withWorkers(s segment.Strategy, workers int) segment.Strategy {
	if w, ok := s.(segment.Windowed); ok && w.Workers == 0 {
		w.Workers = workers
		return w
	}
	return s
}
