package beatpattern

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/beatmap"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/segment"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/storage"
	"github.com/himanishpuri/BeatPattern/pkg/models"
)

type discardLogger struct{}

func (discardLogger) Infof(string, ...any)  {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Errorf(string, ...any) {}
func (discardLogger) Debugf(string, ...any) {}

// setupTestService creates a test service with a temporary database
func setupTestService(t *testing.T, opts ...Option) Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_service.sqlite3")
	opts = append([]Option{WithDBPath(dbPath), WithLogger(discardLogger{})}, opts...)

	svc, err := NewService(opts...)
	if err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	t.Cleanup(func() {
		svc.Close()
	})
	return svc
}

// streamMap builds a .osu document holding a 1/4 stream of n notes at 200 bpm.
func streamMap(n int) string {
	var b strings.Builder
	b.WriteString("osu file format v14\n\n[Metadata]\nTitle:Stream Test\nArtist:Tester\nCreator:me\nVersion:Expert\n\n")
	b.WriteString("[TimingPoints]\n0,300,4,2,0,60,1,0\n\n[HitObjects]\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "256,192,%d,1,0,0:0:0:0:\n", 1000+i*75)
	}
	return b.String()
}

func TestAnalyzeSampleFile(t *testing.T) {
	svc := setupTestService(t)

	res, err := svc.AnalyzeFile(context.Background(), filepath.Join("beatmap", "testdata", "sample.osu"))
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if res.ID != "" {
		t.Errorf("Expected an unsaved analysis, got ID %s", res.ID)
	}
	if res.NoteCount != 6 {
		t.Errorf("Expected 6 notes, got %d", res.NoteCount)
	}
	if res.Metadata.Title != "Sample Stream" {
		t.Errorf("Expected title 'Sample Stream', got '%s'", res.Metadata.Title)
	}

	count, err := svc.CountAnalyses()
	if err != nil {
		t.Fatalf("CountAnalyses failed: %v", err)
	}
	if count != 0 {
		t.Errorf("AnalyzeFile should not store anything, found %d analyses", count)
	}
}

func TestAddBeatmapReader(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	res, err := svc.AddBeatmapReader(ctx, strings.NewReader(streamMap(64)))
	if err != nil {
		t.Fatalf("AddBeatmapReader failed: %v", err)
	}
	if res.ID == "" {
		t.Fatal("Expected a stored analysis ID")
	}
	if res.BPM != 200 {
		t.Errorf("Expected 200 bpm, got %f", res.BPM)
	}
	if res.Stream.LongStreams != 1 || res.Stream.MaxStreamLength != 63 {
		t.Errorf("Expected one long stream of 63 gaps, got %+v", res.Stream)
	}
	if res.Jump.TotalJumpCount != 0 {
		t.Errorf("Expected no jumps on stacked notes, got %+v", res.Jump)
	}

	stored, err := svc.GetAnalysis(res.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if stored.Stream != res.Stream || stored.Jump != res.Jump {
		t.Errorf("Stored analysis differs: %+v vs %+v", stored, res)
	}
	if stored.Metadata.Title != "Stream Test" || stored.NoteCount != 64 {
		t.Errorf("Unexpected stored metadata %+v (%d notes)", stored.Metadata, stored.NoteCount)
	}

	list, err := svc.ListAnalyses()
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 analysis, got %d", len(list))
	}

	if err := svc.DeleteAnalysis(res.ID); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}
	if _, err := svc.GetAnalysis(res.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestAddBeatmapReaderInvalid(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.AddBeatmapReader(context.Background(), strings.NewReader("not a beatmap"))
	if err == nil {
		t.Fatal("Expected an error for invalid input")
	}
}

func TestAnalyzeCanceledContext(t *testing.T) {
	svc := setupTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Analyze(ctx, &models.Beatmap{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeBeatmapStrategies(t *testing.T) {
	notes := make([]models.Note, 500)
	for i := range notes {
		ts := float64(i) * 150
		x := float32(100)
		if i%2 == 1 {
			x = 400
		}
		notes[i] = models.Note{StartTime: ts, EndTime: ts, X: x, Y: 192}
	}
	m := &models.Beatmap{Notes: notes, Timeline: []models.TempoSegment{{BeatLength: 300}}}

	windowed := AnalyzeBeatmap(m, WithWorkers(4))
	whole := AnalyzeBeatmap(m, WithJumpStrategy(segment.Whole{}))

	// windows start at 0, 50, ..., 300
	if windowed.Jump.LongJumps != 7 {
		t.Errorf("Expected 7 windowed long jumps, got %+v", windowed.Jump)
	}
	if whole.Jump.LongJumps != 1 || whole.Jump.MaxJumpLength != 499 {
		t.Errorf("Expected one whole-map jump run of 499, got %+v", whole.Jump)
	}

	serial := AnalyzeBeatmap(m)
	if serial.Jump != windowed.Jump {
		t.Errorf("Worker count changed the result: %+v vs %+v", serial.Jump, windowed.Jump)
	}
}

type recordingLogger struct {
	discardLogger
	debug []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func TestAnalyzeLogsStrategies(t *testing.T) {
	log := &recordingLogger{}
	svc := setupTestService(t, WithLogger(log))

	m, err := beatmap.ParseString(streamMap(400))
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if _, err := svc.Analyze(context.Background(), m); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(log.debug) != 1 {
		t.Fatalf("Expected one debug line, got %q", log.debug)
	}
	// 400 notes: windows start at 0, 50, 100, 150, 200
	for _, want := range []string{"(windowed, 5 scopes)", "(whole, 1 scopes)"} {
		if !strings.Contains(log.debug[0], want) {
			t.Errorf("Expected %q in %q", want, log.debug[0])
		}
	}
}

type failingStorage struct{ Storage }

func (failingStorage) RegisterBeatmap(models.Metadata, int) (string, error) {
	return "", errors.New("disk full")
}

func (failingStorage) Close() error { return nil }

func TestAddBeatmapStorageFailure(t *testing.T) {
	svc, err := NewService(WithStorage(failingStorage{}), WithLogger(discardLogger{}))
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer svc.Close()

	m, err := beatmap.ParseString(streamMap(10))
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if _, err := svc.AddBeatmap(context.Background(), m); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected the storage error to surface, got %v", err)
	}

	// Analysis alone never touches storage
	if _, err := svc.Analyze(context.Background(), m); err != nil {
		t.Errorf("Analyze should not need storage, got %v", err)
	}
}
