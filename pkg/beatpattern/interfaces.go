package beatpattern

import (
	"context"
	"io"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

type Service interface {
	Analyze(ctx context.Context, m *models.Beatmap) (*models.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, path string) (*models.AnalysisResult, error)
	AddBeatmap(ctx context.Context, m *models.Beatmap) (*models.AnalysisResult, error)
	AddBeatmapFile(ctx context.Context, path string) (*models.AnalysisResult, error)
	AddBeatmapReader(ctx context.Context, r io.Reader) (*models.AnalysisResult, error)
	GetAnalysis(id string) (*models.AnalysisResult, error)
	ListAnalyses() ([]models.AnalysisResult, error)
	DeleteAnalysis(id string) error
	CountAnalyses() (int64, error)
	Close() error
}

type Storage interface {
	RegisterBeatmap(meta models.Metadata, noteCount int) (string, error)
	StoreAnalysis(beatmapID string, bpm float64, jump models.JumpAnalysis, stream models.StreamAnalysis) (string, error)
	GetAnalysis(id string) (*models.AnalysisResult, error)
	ListAnalyses() ([]models.AnalysisResult, error)
	DeleteAnalysis(id string) error
	CountAnalyses() (int64, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
