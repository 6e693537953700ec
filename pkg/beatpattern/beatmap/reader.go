// Package beatmap reads .osu beatmap files into the in-memory model.
package beatmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	formatHeader = "osu file format v"
	maxLineSize  = 1024 * 1024
)

// ErrInvalidFormat is returned when the input does not start with an osu! header.
var ErrInvalidFormat = errors.New("not an osu! beatmap")

// ParseFile opens and decodes a .osu file.
func ParseFile(path string) (*models.Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening beatmap: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}

// ParseString decodes a beatmap held in memory.
func ParseString(s string) (*models.Beatmap, error) {
	return Decode(strings.NewReader(s))
}

type decoder struct {
	version      int
	section      string
	difficulty   Difficulty
	metadata     models.Metadata
	timingPoints []timingPoint
	rawObjects   []rawHitObject
}

// Decode reads a beatmap from r. Only the sections needed for pattern
// analysis are interpreted; the rest are skipped.
func Decode(r io.Reader) (*models.Beatmap, error) {
	d := &decoder{difficulty: defaultDifficulty()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	headerSeen := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if !headerSeen {
			if !strings.HasPrefix(line, formatHeader) {
				return nil, ErrInvalidFormat
			}
			v, err := strconv.Atoi(strings.TrimPrefix(line, formatHeader))
			if err != nil {
				return nil, fmt.Errorf("line %d: bad format version: %w", lineNo, err)
			}
			d.version = v
			headerSeen = true
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			d.section = line[1 : len(line)-1]
			continue
		}

		if err := d.parseLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading beatmap: %w", err)
	}
	if !headerSeen {
		return nil, ErrInvalidFormat
	}

	return d.build(), nil
}

func (d *decoder) parseLine(line string) error {
	switch d.section {
	case "Metadata":
		d.parseMetadata(line)
	case "Difficulty":
		return d.parseDifficulty(line)
	case "TimingPoints":
		tp, err := parseTimingPoint(line)
		if err != nil {
			return err
		}
		d.timingPoints = append(d.timingPoints, tp)
	case "HitObjects":
		obj, err := parseHitObject(line)
		if err != nil {
			return err
		}
		d.rawObjects = append(d.rawObjects, obj)
	}
	return nil
}

func splitKeyValue(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func (d *decoder) parseMetadata(line string) {
	key, value, ok := splitKeyValue(line)
	if !ok {
		return
	}
	switch key {
	case "Title":
		d.metadata.Title = value
	case "Artist":
		d.metadata.Artist = value
	case "Creator":
		d.metadata.Creator = value
	case "Version":
		d.metadata.Version = value
	case "BeatmapID":
		d.metadata.BeatmapID, _ = strconv.Atoi(value)
	case "BeatmapSetID":
		d.metadata.BeatmapSetID, _ = strconv.Atoi(value)
	}
}

func (d *decoder) parseDifficulty(line string) error {
	key, value, ok := splitKeyValue(line)
	if !ok {
		return nil
	}
	// Only the slider multiplier feeds note timing; other keys are not read.
	if key != "SliderMultiplier" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("bad %s %q: %w", key, value, err)
	}
	d.difficulty.SliderMultiplier = f
	return nil
}

func (d *decoder) build() *models.Beatmap {
	timing := newTimingTable(d.timingPoints)

	m := &models.Beatmap{
		Metadata: d.metadata,
		Notes:    make([]models.Note, 0, len(d.rawObjects)),
		Timeline: timing.segments(),
	}
	for _, obj := range d.rawObjects {
		m.Notes = append(m.Notes, obj.note(timing, d.difficulty))
	}
	return m
}
