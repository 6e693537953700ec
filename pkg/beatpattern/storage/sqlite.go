//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/BeatPattern/pkg/models"
	"github.com/himanishpuri/BeatPattern/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const errDBClientNil = "db client is nil"

// ErrNotFound is returned when an analysis ID does not exist.
var ErrNotFound = errors.New("analysis not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Beatmap struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Title     string `gorm:"uniqueIndex:idx_beatmap_unique,priority:1;index:idx_beatmap_meta,priority:1" json:"title"`
	Artist    string `gorm:"uniqueIndex:idx_beatmap_unique,priority:2;index:idx_beatmap_meta,priority:2" json:"artist"`
	Creator   string `gorm:"uniqueIndex:idx_beatmap_unique,priority:3" json:"creator"`
	Version   string `gorm:"uniqueIndex:idx_beatmap_unique,priority:4" json:"version"`
	OsuID     int    `gorm:"index:idx_osu_id" json:"osu_id"`
	OsuSetID  int    `json:"osu_set_id"`
	NoteCount int    `json:"note_count"`
	CreatedAt time.Time
	Analyses  []Analysis `gorm:"constraint:OnDelete:CASCADE"`
}

type Analysis struct {
	ID        string                `gorm:"primaryKey;type:varchar(36)"`
	BeatmapID string                `gorm:"type:varchar(36);index:idx_beatmap" json:"beatmap_id"`
	Beatmap   Beatmap               `gorm:"foreignKey:BeatmapID" json:"-"`
	BPM       float64               `json:"bpm"`
	Jump      models.JumpAnalysis   `gorm:"embedded;embeddedPrefix:jump_" json:"jump"`
	Stream    models.StreamAnalysis `gorm:"embedded;embeddedPrefix:stream_" json:"stream"`
	CreatedAt time.Time
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := utils.MakeDir(dir); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Beatmap{}, &Analysis{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RegisterBeatmap returns the ID of the beatmap with the same title, artist,
// creator and difficulty name, creating it when missing.
func (c *DBClient) RegisterBeatmap(meta models.Metadata, noteCount int) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	var bm Beatmap
	where := "title = ? AND artist = ? AND creator = ? AND version = ?"

	err := c.DB.Where(where, meta.Title, meta.Artist, meta.Creator, meta.Version).First(&bm).Error
	if err == nil {
		if bm.NoteCount != noteCount || (bm.OsuID == 0 && meta.BeatmapID != 0) {
			updates := map[string]any{"note_count": noteCount}
			// A file without online IDs keeps the ones already stored.
			if meta.BeatmapID != 0 {
				updates["osu_id"] = meta.BeatmapID
				updates["osu_set_id"] = meta.BeatmapSetID
			}
			if err := c.DB.Model(&bm).Updates(updates).Error; err != nil {
				return "", fmt.Errorf("updating beatmap: %w", err)
			}
		}
		return bm.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("querying existing beatmap: %w", err)
	}

	bm = Beatmap{
		ID:        utils.GenerateUUID(),
		Title:     meta.Title,
		Artist:    meta.Artist,
		Creator:   meta.Creator,
		Version:   meta.Version,
		OsuID:     meta.BeatmapID,
		OsuSetID:  meta.BeatmapSetID,
		NoteCount: noteCount,
	}
	err = c.DB.Create(&bm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			if fetchErr := c.DB.Where(where, meta.Title, meta.Artist, meta.Creator, meta.Version).First(&bm).Error; fetchErr != nil {
				return "", fmt.Errorf("fetching beatmap after constraint violation: %w", fetchErr)
			}
			return bm.ID, nil
		}
		return "", fmt.Errorf("creating beatmap: %w", err)
	}

	return bm.ID, nil
}

// StoreAnalysis saves one analysis of a registered beatmap and returns its ID.
func (c *DBClient) StoreAnalysis(beatmapID string, bpm float64, jump models.JumpAnalysis, stream models.StreamAnalysis) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	row := Analysis{
		ID:        utils.GenerateUUID(),
		BeatmapID: beatmapID,
		BPM:       bpm,
		Jump:      jump,
		Stream:    stream,
	}
	if err := c.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("creating analysis: %w", err)
	}
	return row.ID, nil
}

func (c *DBClient) GetAnalysis(id string) (*models.AnalysisResult, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var row Analysis
	if err := c.DB.Preload("Beatmap").Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("querying analysis: %w", err)
	}
	res := row.toResult()
	return &res, nil
}

// ListAnalyses returns every stored analysis, newest first.
func (c *DBClient) ListAnalyses() ([]models.AnalysisResult, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Analysis
	if err := c.DB.Preload("Beatmap").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	out := make([]models.AnalysisResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toResult())
	}
	return out, nil
}

// DeleteAnalysis removes an analysis, and its beatmap once no analyses refer to it.
func (c *DBClient) DeleteAnalysis(id string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		var row Analysis
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&Analysis{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&Analysis{}).Where("beatmap_id = ?", row.BeatmapID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Where("id = ?", row.BeatmapID).Delete(&Beatmap{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *DBClient) CountAnalyses() (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var count int64
	if err := c.DB.Model(&Analysis{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting analyses: %w", err)
	}
	return count, nil
}

func (a Analysis) toResult() models.AnalysisResult {
	return models.AnalysisResult{
		ID: a.ID,
		Metadata: models.Metadata{
			Title:        a.Beatmap.Title,
			Artist:       a.Beatmap.Artist,
			Creator:      a.Beatmap.Creator,
			Version:      a.Beatmap.Version,
			BeatmapID:    a.Beatmap.OsuID,
			BeatmapSetID: a.Beatmap.OsuSetID,
		},
		NoteCount: a.Beatmap.NoteCount,
		BPM:       a.BPM,
		Jump:      a.Jump,
		Stream:    a.Stream,
		CreatedAt: a.CreatedAt,
	}
}
