package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const osuWebsite = "https://osu.ppy.sh"

// ExtractBeatmapID returns the difficulty ID named by an osu! website link.
// It understands /beatmapsets/{set}#{mode}/{id}, /beatmaps/{id} and /b/{id},
// and also accepts a bare numeric ID.
func ExtractBeatmapID(beatmapURL string) (int, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(beatmapURL)); err == nil && id > 0 {
		return id, nil
	}

	u, err := url.Parse(beatmapURL)
	if err != nil {
		return 0, fmt.Errorf("invalid URL: %w", err)
	}
	if !IsOsuURL(beatmapURL) {
		return 0, fmt.Errorf("not an osu! URL: %s", beatmapURL)
	}

	if strings.HasPrefix(u.Path, "/beatmapsets/") {
		// The difficulty lives in the fragment: "osu/456"
		if idx := strings.LastIndex(u.Fragment, "/"); idx != -1 {
			if id, err := strconv.Atoi(u.Fragment[idx+1:]); err == nil && id > 0 {
				return id, nil
			}
		}
		return 0, fmt.Errorf("beatmap set URL has no difficulty: %s", beatmapURL)
	}

	for _, prefix := range []string{"/beatmaps/", "/b/"} {
		if strings.HasPrefix(u.Path, prefix) {
			rest := strings.TrimPrefix(u.Path, prefix)
			if idx := strings.Index(rest, "/"); idx != -1 {
				rest = rest[:idx]
			}
			if id, err := strconv.Atoi(rest); err == nil && id > 0 {
				return id, nil
			}
		}
	}

	return 0, fmt.Errorf("unable to extract beatmap ID from URL: %s", beatmapURL)
}

func IsOsuURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Host)
	return host == "osu.ppy.sh" || strings.HasSuffix(host, ".osu.ppy.sh")
}

// BeatmapURL links to a difficulty on the osu! website, or returns "" when
// the beatmap has no online ID.
func BeatmapURL(setID, beatmapID int) string {
	switch {
	case beatmapID <= 0:
		return ""
	case setID <= 0:
		return fmt.Sprintf("%s/beatmaps/%d", osuWebsite, beatmapID)
	}
	return fmt.Sprintf("%s/beatmapsets/%d#osu/%d", osuWebsite, setID, beatmapID)
}
