package utils

import "testing"

func TestExtractBeatmapID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"https://osu.ppy.sh/beatmapsets/123#osu/456", 456, false},
		{"https://osu.ppy.sh/beatmaps/789", 789, false},
		{"https://osu.ppy.sh/b/42?m=0", 42, false},
		{"1001", 1001, false},
		{"https://osu.ppy.sh/beatmapsets/123", 0, true},
		{"https://example.com/beatmaps/789", 0, true},
		{"https://osu.ppy.sh/users/2", 0, true},
	}

	for _, tt := range tests {
		got, err := ExtractBeatmapID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractBeatmapID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractBeatmapID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBeatmapURL(t *testing.T) {
	if got := BeatmapURL(123, 456); got != "https://osu.ppy.sh/beatmapsets/123#osu/456" {
		t.Errorf("Unexpected URL %q", got)
	}
	if got := BeatmapURL(0, 456); got != "https://osu.ppy.sh/beatmaps/456" {
		t.Errorf("Unexpected URL %q", got)
	}
	if got := BeatmapURL(123, 0); got != "" {
		t.Errorf("Expected no URL without a beatmap ID, got %q", got)
	}

	// Round trip
	id, err := ExtractBeatmapID(BeatmapURL(9, 10))
	if err != nil || id != 10 {
		t.Errorf("Round trip gave %d, %v", id, err)
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID(GenerateUUID()) {
		t.Error("Generated UUID should be valid")
	}
	if IsValidUUID("not-a-uuid") || IsValidUUID("") {
		t.Error("Expected invalid UUIDs to be rejected")
	}
}
