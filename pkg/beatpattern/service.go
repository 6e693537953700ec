//go:build !js && !wasm
// +build !js,!wasm

package beatpattern

import (
	"context"
	"fmt"
	"io"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/beatmap"
	"github.com/himanishpuri/BeatPattern/pkg/logger"
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// patternService is the default implementation of the Service interface.
type patternService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// Set default logger if none provided
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &patternService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// Analyze scores a beatmap without storing it.
func (s *patternService) Analyze(ctx context.Context, m *models.Beatmap) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, jump, stream := analyze(m, s.config)
	s.log.Debugf("Analyzed %q [%s]: %d notes, %.2f bpm, jump=%.3f (%s, %d scopes) stream=%.3f (%s, %d scopes)",
		m.Metadata.Title, m.Metadata.Version, res.NoteCount, res.BPM,
		res.Jump.OverallConfidence, jump.Strategy, jump.Scopes,
		res.Stream.OverallConfidence, stream.Strategy, stream.Scopes)
	return res, nil
}

// AnalyzeFile parses and scores a .osu file without storing it.
func (s *patternService) AnalyzeFile(ctx context.Context, path string) (*models.AnalysisResult, error) {
	m, err := beatmap.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("beatmap parsing failed: %w", err)
	}
	return s.Analyze(ctx, m)
}

// AddBeatmap scores a beatmap and stores the result.
func (s *patternService) AddBeatmap(ctx context.Context, m *models.Beatmap) (*models.AnalysisResult, error) {
	s.log.Infof("Processing beatmap: %s - %s [%s]", m.Metadata.Artist, m.Metadata.Title, m.Metadata.Version)

	res, err := s.Analyze(ctx, m)
	if err != nil {
		return nil, err
	}

	beatmapID, err := s.storage.RegisterBeatmap(m.Metadata, len(m.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to register beatmap: %w", err)
	}

	id, err := s.storage.StoreAnalysis(beatmapID, res.BPM, res.Jump, res.Stream)
	if err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	res.ID = id

	s.log.Infof("Stored analysis ID=%s (jump %.3f, stream %.3f)", id, res.Jump.OverallConfidence, res.Stream.OverallConfidence)
	return res, nil
}

func (s *patternService) AddBeatmapFile(ctx context.Context, path string) (*models.AnalysisResult, error) {
	m, err := beatmap.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("beatmap parsing failed: %w", err)
	}
	return s.AddBeatmap(ctx, m)
}

func (s *patternService) AddBeatmapReader(ctx context.Context, r io.Reader) (*models.AnalysisResult, error) {
	m, err := beatmap.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("beatmap parsing failed: %w", err)
	}
	return s.AddBeatmap(ctx, m)
}

func (s *patternService) GetAnalysis(id string) (*models.AnalysisResult, error) {
	return s.storage.GetAnalysis(id)
}

// ListAnalyses returns all stored analyses, newest first.
func (s *patternService) ListAnalyses() ([]models.AnalysisResult, error) {
	return s.storage.ListAnalyses()
}

func (s *patternService) DeleteAnalysis(id string) error {
	return s.storage.DeleteAnalysis(id)
}

func (s *patternService) CountAnalyses() (int64, error) {
	return s.storage.CountAnalyses()
}

// Close releases all resources held by the service.
func (s *patternService) Close() error {
	return s.storage.Close()
}
