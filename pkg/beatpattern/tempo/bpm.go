package tempo

import (
	"math"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	// MinBPM floors every estimate so derived intervals stay positive.
	MinBPM = 1.0

	msPerMinute = 60000.0

	// beat lengths are keyed at this many decimal places
	quantizeScale = 1000.0
)

// ReferenceTime returns the point up to which tempo segments are weighted: the
// end time of the last note, else the start of the last segment, else 0.
func ReferenceTime(notes []models.Note, timeline []models.TempoSegment) float64 {
	if len(notes) > 0 {
		return notes[len(notes)-1].EndTime
	}
	if len(timeline) > 0 {
		return timeline[len(timeline)-1].Time
	}
	return 0
}

// EstimateBPM reduces a tempo timeline to the BPM of the beat length that is
// active for the longest time before lastTime. The first segment always counts
// from 0 so pickup notes before the first timing point are included.
func EstimateBPM(lastTime float64, timeline []models.TempoSegment) float64 {
	acc := newBeatLengthDurations(lastTime)

	for i, seg := range timeline {
		start := seg.Time
		if i == 0 {
			start = 0
		}
		end := lastTime
		if i+1 < len(timeline) {
			end = timeline[i+1].Time
		}
		acc.add(seg.BeatLength, start, end)
	}

	return ToBPM(acc.dominant())
}

// FromBeatmap is EstimateBPM with the reference time taken from the map itself.
func FromBeatmap(m *models.Beatmap) float64 {
	return EstimateBPM(ReferenceTime(m.Notes, m.Timeline), m.Timeline)
}

// ToBPM converts a beat length in ms to BPM, floored at MinBPM.
func ToBPM(beatLength float64) float64 {
	if beatLength <= 0 {
		return MinBPM
	}
	return math.Max(msPerMinute/beatLength, MinBPM)
}

// BeatLength converts a BPM back to milliseconds per beat.
func BeatLength(bpm float64) float64 {
	return msPerMinute / bpm
}

type beatLengthDurations struct {
	lastTime  float64
	durations map[float64]float64
	order     []float64
}

func newBeatLengthDurations(lastTime float64) *beatLengthDurations {
	return &beatLengthDurations{
		lastTime:  lastTime,
		durations: make(map[float64]float64),
	}
}

func (b *beatLengthDurations) add(beatLength, start, end float64) {
	key := math.Round(beatLength*quantizeScale) / quantizeScale
	if _, ok := b.durations[key]; !ok {
		b.order = append(b.order, key)
		b.durations[key] = 0
	}
	if start <= b.lastTime {
		b.durations[key] += end - start
	}
}

// dominant returns the beat length with the largest duration, 0 if none.
// Ties go to the beat length seen first.
func (b *beatLengthDurations) dominant() float64 {
	best, bestDuration := 0.0, math.Inf(-1)
	for _, key := range b.order {
		if d := b.durations[key]; d > bestDuration {
			best, bestDuration = key, d
		}
	}
	return best
}
