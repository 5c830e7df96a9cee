package schedule

import "strings"

// AudioFormatForURL derives a schedule's audio_format from the stream
// URL's shape: "mp4" for an HLS playlist (.m3u8), "mp3" otherwise. This
// is the only place URL shape influences anything beyond fetcher choice.
func AudioFormatForURL(streamURL string) string {
	if strings.HasSuffix(strings.ToLower(streamURL), ".m3u8") {
		return "mp4"
	}
	return "mp3"
}
