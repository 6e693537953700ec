package segment

import (
	"golang.org/x/sync/errgroup"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	DefaultWindowSize = 200
	DefaultWindowStep = 50
)

// Scope is one scanned stretch of notes, [Start, End) in the input.
type Scope struct {
	Start int
	End   int
	Result
}

// Len returns the number of notes in the scope.
func (s Scope) Len() int {
	return s.End - s.Start
}

// Strategy decides how a note sequence is partitioned before scanning.
type Strategy interface {
	Segment(notes []models.Note, cfg Config) []Scope
	Name() string
}

// Whole scans the full sequence as a single scope.
type Whole struct{}

func (Whole) Name() string { return "whole" }

func (Whole) Segment(notes []models.Note, cfg Config) []Scope {
	return []Scope{{Start: 0, End: len(notes), Result: Scan(notes, cfg)}}
}

// Windowed scans overlapping windows of Size notes, advanced by Step. The
// final window is truncated to the remaining notes. Runs crossing a window
// edge are cut there; overlapping windows see them again.
type Windowed struct {
	Size int
	Step int
	// Workers bounds concurrent window scans. Values below 2 scan serially.
	Workers int
}

// NewWindowed returns the default 200/50 sliding window.
func NewWindowed() Windowed {
	return Windowed{Size: DefaultWindowSize, Step: DefaultWindowStep}
}

func (w Windowed) Name() string { return "windowed" }

// Bounds lists the [start, end) pairs of every window over n notes.
func (w Windowed) Bounds(n int) [][2]int {
	size, step := w.Size, w.Step
	if size <= 0 {
		size = DefaultWindowSize
	}
	if step <= 0 {
		step = DefaultWindowStep
	}

	var bounds [][2]int
	for start := 0; start < n; start += step {
		end := min(start+size, n)
		bounds = append(bounds, [2]int{start, end})
		if end == n {
			break
		}
	}
	return bounds
}

func (w Windowed) Segment(notes []models.Note, cfg Config) []Scope {
	bounds := w.Bounds(len(notes))
	scopes := make([]Scope, len(bounds))

	scan := func(i int) {
		b := bounds[i]
		scopes[i] = Scope{Start: b[0], End: b[1], Result: Scan(notes[b[0]:b[1]], cfg)}
	}

	if w.Workers < 2 || len(bounds) < 2 {
		for i := range bounds {
			scan(i)
		}
		return scopes
	}

	var g errgroup.Group
	g.SetLimit(w.Workers)
	for i := range bounds {
		i := i
		g.Go(func() error {
			scan(i)
			return nil
		})
	}
	_ = g.Wait()

	return scopes
}
