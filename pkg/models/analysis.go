package models

import "time"

// JumpAnalysis describes the jump patterns found in a beatmap.
type JumpAnalysis struct {
	OverallConfidence float64 `json:"overall_confidence" msgpack:"overall_confidence"`
	TotalJumpCount    int     `json:"total_jump_count" msgpack:"total_jump_count"`

	MaxJumpLength int `json:"max_jump_length" msgpack:"max_jump_length"`
	LongJumps     int `json:"long_jumps" msgpack:"long_jumps"`
	MediumJumps   int `json:"medium_jumps" msgpack:"medium_jumps"`
	ShortJumps    int `json:"short_jumps" msgpack:"short_jumps"`

	JumpDensity    float64 `json:"jump_density" msgpack:"jump_density"`
	BPMConsistency float64 `json:"bpm_consistency" msgpack:"bpm_consistency"`
}

// StreamAnalysis describes the stream patterns found in a beatmap.
type StreamAnalysis struct {
	OverallConfidence float64 `json:"overall_confidence" msgpack:"overall_confidence"`
	TotalStreamCount  int     `json:"total_stream_count" msgpack:"total_stream_count"`

	ShortStreams  int `json:"short_streams" msgpack:"short_streams"`
	MediumStreams int `json:"medium_streams" msgpack:"medium_streams"`
	LongStreams   int `json:"long_streams" msgpack:"long_streams"`
	Bursts        int `json:"bursts" msgpack:"bursts"` // short runs, not scored

	MaxStreamLength int     `json:"max_stream_length" msgpack:"max_stream_length"`
	StreamDensity   float64 `json:"stream_density" msgpack:"stream_density"`
	BPMConsistency  float64 `json:"bpm_consistency" msgpack:"bpm_consistency"`
}

// AnalysisResult is a complete analysis of one beatmap as returned by the service.
type AnalysisResult struct {
	ID        string         `json:"id" msgpack:"id"` // UUID, empty when not persisted
	Metadata  Metadata       `json:"metadata" msgpack:"metadata"`
	NoteCount int            `json:"note_count" msgpack:"note_count"`
	BPM       float64        `json:"bpm" msgpack:"bpm"`
	Jump      JumpAnalysis   `json:"jump" msgpack:"jump"`
	Stream    StreamAnalysis `json:"stream" msgpack:"stream"`
	CreatedAt time.Time      `json:"created_at" msgpack:"created_at"`
}
