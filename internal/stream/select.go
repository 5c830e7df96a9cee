package stream

import (
	"strings"
	"time"
)

// ForURL picks the ICY or HLS fetcher for sourceURL, matching the same
// ".m3u8" shape test used to derive a schedule's audio_format. URL
// shape is the only signal that influences fetcher choice.
func ForURL(sourceURL string, client *HTTPChunkClient, hlsPollInterval time.Duration) Fetcher {
	if strings.HasSuffix(strings.ToLower(sourceURL), ".m3u8") {
		return NewHLSFetcher(client, hlsPollInterval)
	}
	return NewICYFetcher(client)
}
