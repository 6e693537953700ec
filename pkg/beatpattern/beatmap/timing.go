package beatmap

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	minSliderVelocity = 0.1
	maxSliderVelocity = 10.0
)

// Difficulty holds the [Difficulty] values that affect note timing.
type Difficulty struct {
	SliderMultiplier float64
}

func defaultDifficulty() Difficulty {
	return Difficulty{SliderMultiplier: 1.4}
}

type timingPoint struct {
	time        float64
	beatLength  float64
	uninherited bool
}

// parseTimingPoint reads "time,beatLength,meter,sampleSet,sampleIndex,volume,uninherited,effects".
// Old formats stop after beatLength and are always uninherited.
func parseTimingPoint(line string) (timingPoint, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return timingPoint{}, fmt.Errorf("timing point %q: expected at least 2 fields", line)
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return timingPoint{}, fmt.Errorf("timing point time %q: %w", fields[0], err)
	}
	beatLength, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return timingPoint{}, fmt.Errorf("timing point beat length %q: %w", fields[1], err)
	}

	tp := timingPoint{time: t, beatLength: beatLength, uninherited: true}
	if len(fields) > 6 {
		tp.uninherited = strings.TrimSpace(fields[6]) != "0"
	}
	// negative beat lengths are always slider velocity multipliers
	if beatLength < 0 {
		tp.uninherited = false
	}
	return tp, nil
}

type timingTable struct {
	uninherited []timingPoint
	inherited   []timingPoint
}

func newTimingTable(points []timingPoint) *timingTable {
	sorted := make([]timingPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].time < sorted[j].time })

	t := &timingTable{}
	for _, tp := range sorted {
		if tp.uninherited {
			t.uninherited = append(t.uninherited, tp)
		} else {
			t.inherited = append(t.inherited, tp)
		}
	}
	return t
}

func (t *timingTable) segments() []models.TempoSegment {
	segs := make([]models.TempoSegment, len(t.uninherited))
	for i, tp := range t.uninherited {
		segs[i] = models.TempoSegment{Time: tp.time, BeatLength: tp.beatLength}
	}
	return segs
}

// beatAt returns the active uninherited point at time, falling back to the
// first one for objects placed before it.
func (t *timingTable) beatAt(time float64) (timingPoint, bool) {
	if len(t.uninherited) == 0 {
		return timingPoint{}, false
	}
	i := sort.Search(len(t.uninherited), func(i int) bool { return t.uninherited[i].time > time })
	if i == 0 {
		return t.uninherited[0], true
	}
	return t.uninherited[i-1], true
}

// velocityAt returns the slider velocity multiplier at time. An uninherited
// point resets it to 1.
func (t *timingTable) velocityAt(time float64, since float64) float64 {
	i := sort.Search(len(t.inherited), func(i int) bool { return t.inherited[i].time > time })
	if i == 0 {
		return 1
	}
	tp := t.inherited[i-1]
	if tp.time < since || tp.beatLength >= 0 {
		return 1
	}
	return math.Min(math.Max(-100/tp.beatLength, minSliderVelocity), maxSliderVelocity)
}
