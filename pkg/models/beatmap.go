package models

import "math"

// Note is a single playable timing point of a beatmap.
// Times are in milliseconds, positions in osu!pixels.
type Note struct {
	StartTime float64 `json:"start_time" msgpack:"start_time"`
	EndTime   float64 `json:"end_time" msgpack:"end_time"`
	X         float32 `json:"x" msgpack:"x"`
	Y         float32 `json:"y" msgpack:"y"`
}

// TempoSegment is an uninherited timing point. It is valid from Time until the
// next segment's Time, or until the end of the map for the last one.
type TempoSegment struct {
	Time       float64 `json:"time" msgpack:"time"`
	BeatLength float64 `json:"beat_length" msgpack:"beat_length"` // ms per beat
}

// Metadata holds the descriptive fields of a beatmap difficulty.
type Metadata struct {
	Title        string `json:"title" msgpack:"title"`
	Artist       string `json:"artist" msgpack:"artist"`
	Creator      string `json:"creator" msgpack:"creator"`
	Version      string `json:"version" msgpack:"version"`
	BeatmapID    int    `json:"beatmap_id,omitempty" msgpack:"beatmap_id,omitempty"`
	BeatmapSetID int    `json:"beatmap_set_id,omitempty" msgpack:"beatmap_set_id,omitempty"`
}

// Beatmap is the parsed, in-memory form of one difficulty. Notes are ordered by
// StartTime and Timeline by Time.
type Beatmap struct {
	Metadata Metadata       `json:"metadata" msgpack:"metadata"`
	Notes    []Note         `json:"notes" msgpack:"notes"`
	Timeline []TempoSegment `json:"timeline" msgpack:"timeline"`
}

// DistanceTo returns the planar distance between two notes.
func (n Note) DistanceTo(o Note) float32 {
	return float32(math.Hypot(float64(o.X-n.X), float64(o.Y-n.Y)))
}
