package stream

import (
	"net/url"
	"strings"
)

// parsePlaylistSegments extracts media segment URIs from an HLS
// playlist body, in playlist order. Tag lines and blanks are skipped;
// every remaining non-empty line is a segment URI. Only the URIs
// matter for recording, so #EXTINF metadata is not parsed.
func parsePlaylistSegments(body string) []string {
	var segments []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		segments = append(segments, line)
	}
	return segments
}

// resolveSegmentURL resolves a segment URI (absolute or relative)
// against the playlist's own URL.
func resolveSegmentURL(playlistURL, segment string) string {
	base, err := url.Parse(playlistURL)
	if err != nil {
		return segment
	}
	ref, err := url.Parse(segment)
	if err != nil {
		return segment
	}
	return base.ResolveReference(ref).String()
}
