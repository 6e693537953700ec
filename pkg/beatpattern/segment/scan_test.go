package segment

import (
	"reflect"
	"testing"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

// evenNotes returns n notes spaced gap ms apart, alternating between two
// positions dist apart.
func evenNotes(n int, gap float64, dist float32) []models.Note {
	notes := make([]models.Note, n)
	for i := range notes {
		t := float64(i) * gap
		x := float32(0)
		if i%2 == 1 {
			x = dist
		}
		notes[i] = models.Note{StartTime: t, EndTime: t, X: x}
	}
	return notes
}

func fromGaps(gaps ...float64) []models.Note {
	notes := []models.Note{{}}
	t := 0.0
	for _, g := range gaps {
		t += g
		notes = append(notes, models.Note{StartTime: t, EndTime: t})
	}
	return notes
}

func TestScanEvenlySpaced(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	res := Scan(evenNotes(10, 100, 0), cfg)

	if !reflect.DeepEqual(res.Lengths, []int{9}) {
		t.Fatalf("expected a single run of 9 gaps, got %v", res.Lengths)
	}
	if len(res.Jitter) != 8 {
		t.Fatalf("expected 8 jitter samples, got %d", len(res.Jitter))
	}
	for i, j := range res.Jitter {
		if j != 0 {
			t.Errorf("jitter[%d] = %f, expected 0", i, j)
		}
	}
}

func TestScanOutlierSplitsRun(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	res := Scan(fromGaps(100, 100, 100, 150, 100, 100), cfg)

	if !reflect.DeepEqual(res.Lengths, []int{3, 2}) {
		t.Errorf("expected runs [3 2], got %v", res.Lengths)
	}
	if len(res.Jitter) != 3 {
		t.Errorf("expected 3 jitter samples, got %d", len(res.Jitter))
	}
}

func TestScanTolerance(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	tests := []struct {
		name     string
		gap      float64
		accepted bool
	}{
		{"exact", 100, true},
		{"inside upper", 109, true},
		{"inside lower", 91, true},
		{"outside upper", 111, false},
		{"outside lower", 89, false},
		{"half", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.Accepts(models.Note{}, models.Note{StartTime: tt.gap})
			if got != tt.accepted {
				t.Errorf("Accepts(gap=%f) = %v, expected %v", tt.gap, got, tt.accepted)
			}
		})
	}
}

func TestScanJitter(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	res := Scan(fromGaps(100, 105, 98), cfg)

	expected := []float64{5, 7}
	if len(res.Jitter) != len(expected) {
		t.Fatalf("expected %d jitter samples, got %v", len(expected), res.Jitter)
	}
	for i := range expected {
		if diff := res.Jitter[i] - expected[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("jitter[%d] = %f, expected %f", i, res.Jitter[i], expected[i])
		}
	}
}

func TestScanJitterDoesNotCrossRuns(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	res := Scan(fromGaps(95, 300, 105), cfg)

	if !reflect.DeepEqual(res.Lengths, []int{1, 1}) {
		t.Errorf("expected runs [1 1], got %v", res.Lengths)
	}
	if len(res.Jitter) != 0 {
		t.Errorf("expected no jitter across a reset, got %v", res.Jitter)
	}
}

func TestScanDistanceGate(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance, DistanceGate: DefaultDistanceGate}

	if res := Scan(evenNotes(6, 100, 200), cfg); !reflect.DeepEqual(res.Lengths, []int{5}) {
		t.Errorf("expected wide notes to form one run of 5, got %v", res.Lengths)
	}
	if res := Scan(evenNotes(6, 100, 50), cfg); len(res.Lengths) != 0 {
		t.Errorf("expected close notes to form no runs, got %v", res.Lengths)
	}
	if res := Scan(evenNotes(6, 100, 120), cfg); !reflect.DeepEqual(res.Lengths, []int{5}) {
		t.Errorf("expected gate to be inclusive, got %v", res.Lengths)
	}
}

func TestScanIsDirectional(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	forward := fromGaps(100, 100, 100, 400, 100)

	reversed := make([]models.Note, len(forward))
	for i, n := range forward {
		reversed[len(forward)-1-i] = n
	}

	fw := Scan(forward, cfg)
	rv := Scan(reversed, cfg)
	if !reflect.DeepEqual(fw.Lengths, []int{3, 1}) {
		t.Fatalf("unexpected forward runs %v", fw.Lengths)
	}
	if reflect.DeepEqual(fw.Lengths, rv.Lengths) {
		t.Errorf("reversed input reproduced forward runs %v", rv.Lengths)
	}
}

func TestScanDegenerate(t *testing.T) {
	cfg := Config{ExpectedInterval: 100, Tolerance: DefaultTolerance}
	for _, notes := range [][]models.Note{nil, {{StartTime: 5}}} {
		res := Scan(notes, cfg)
		if len(res.Lengths) != 0 || len(res.Jitter) != 0 {
			t.Errorf("expected empty result for %d notes, got %+v", len(notes), res)
		}
	}
}
