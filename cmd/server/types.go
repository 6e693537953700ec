//go:build !js && !wasm
// +build !js,!wasm

package main

import "github.com/himanishpuri/BeatPattern/pkg/models"

// MaxBeatmapBytes caps the size of an uploaded .osu file.
const MaxBeatmapBytes = 10 << 20

// BeatmapFormField is the multipart field carrying the .osu file.
const BeatmapFormField = "beatmap"

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status        string `json:"status" msgpack:"status"`
	Time          string `json:"time" msgpack:"time"`
	AnalysisCount int64  `json:"analysis_count" msgpack:"analysis_count"`
}

// ListAnalysesResponse is the response for GET /api/analyses
type ListAnalysesResponse struct {
	Analyses []models.AnalysisResult `json:"analyses" msgpack:"analyses"`
	Count    int                     `json:"count" msgpack:"count"`
}

// DeleteAnalysisResponse is the response for DELETE /api/analyses/{id}
type DeleteAnalysisResponse struct {
	Message string `json:"message" msgpack:"message"`
	ID      string `json:"id" msgpack:"id"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error" msgpack:"error"`
	Message string `json:"message,omitempty" msgpack:"message,omitempty"`
	Code    int    `json:"code,omitempty" msgpack:"code,omitempty"`
}
