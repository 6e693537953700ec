package beatmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/himanishpuri/BeatPattern/pkg/models"
)

const (
	typeCircle  = 1 << 0
	typeSlider  = 1 << 1
	typeSpinner = 1 << 3
	typeHold    = 1 << 7
)

type rawHitObject struct {
	x, y    float32
	time    float64
	kind    int
	endTime float64 // spinners and holds
	slides  int
	length  float64 // slider pixel length
}

// parseHitObject reads "x,y,time,type,hitSound,objectParams,hitSample".
func parseHitObject(line string) (rawHitObject, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return rawHitObject{}, fmt.Errorf("hit object %q: expected at least 4 fields", line)
	}

	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return rawHitObject{}, fmt.Errorf("hit object x %q: %w", fields[0], err)
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return rawHitObject{}, fmt.Errorf("hit object y %q: %w", fields[1], err)
	}
	t, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return rawHitObject{}, fmt.Errorf("hit object time %q: %w", fields[2], err)
	}
	kind, err := strconv.Atoi(fields[3])
	if err != nil {
		return rawHitObject{}, fmt.Errorf("hit object type %q: %w", fields[3], err)
	}

	obj := rawHitObject{x: float32(x), y: float32(y), time: t, kind: kind, endTime: t}

	switch {
	case kind&typeSlider != 0:
		if len(fields) < 8 {
			return rawHitObject{}, fmt.Errorf("slider %q: expected at least 8 fields", line)
		}
		if obj.slides, err = strconv.Atoi(fields[6]); err != nil {
			return rawHitObject{}, fmt.Errorf("slider slides %q: %w", fields[6], err)
		}
		if obj.length, err = strconv.ParseFloat(fields[7], 64); err != nil {
			return rawHitObject{}, fmt.Errorf("slider length %q: %w", fields[7], err)
		}
	case kind&typeSpinner != 0:
		if len(fields) < 6 {
			return rawHitObject{}, fmt.Errorf("spinner %q: missing end time", line)
		}
		if obj.endTime, err = strconv.ParseFloat(fields[5], 64); err != nil {
			return rawHitObject{}, fmt.Errorf("spinner end time %q: %w", fields[5], err)
		}
	case kind&typeHold != 0:
		if len(fields) < 6 {
			return rawHitObject{}, fmt.Errorf("hold %q: missing end time", line)
		}
		end, _, _ := strings.Cut(fields[5], ":")
		if obj.endTime, err = strconv.ParseFloat(end, 64); err != nil {
			return rawHitObject{}, fmt.Errorf("hold end time %q: %w", end, err)
		}
	}

	return obj, nil
}

func (o rawHitObject) note(timing *timingTable, diff Difficulty) models.Note {
	n := models.Note{StartTime: o.time, EndTime: o.endTime, X: o.x, Y: o.y}
	if o.kind&typeSlider != 0 {
		n.EndTime = o.time + o.sliderDuration(timing, diff)
	}
	return n
}

func (o rawHitObject) sliderDuration(timing *timingTable, diff Difficulty) float64 {
	beat, ok := timing.beatAt(o.time)
	if !ok || beat.beatLength <= 0 || diff.SliderMultiplier <= 0 {
		return 0
	}
	velocity := timing.velocityAt(o.time, beat.time)
	pixelsPerBeat := diff.SliderMultiplier * 100 * velocity
	return float64(max(o.slides, 1)) * o.length / pixelsPerBeat * beat.beatLength
}
