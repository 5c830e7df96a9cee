package stream

import (
	"context"
	"io"
	"time"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// HLSFetcher periodically polls an HLS media playlist, fetching only
// newly-appeared segments and yielding their bytes, until countdown
// expires.
type HLSFetcher struct {
	client       *HTTPChunkClient
	pollInterval time.Duration
}

// NewHLSFetcher builds an HLSFetcher that polls every pollInterval
// using client for both playlist and segment GETs. A zero or negative
// pollInterval falls back to the default poll interval.
func NewHLSFetcher(client *HTTPChunkClient, pollInterval time.Duration) *HLSFetcher {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &HLSFetcher{client: client, pollInterval: pollInterval}
}

// Fetch implements Fetcher.
func (f *HLSFetcher) Fetch(ctx context.Context, playlistURL string, countdown Countdown) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		countdown.Start()

		segments, err := f.fetchPlaylist(ctx, playlistURL)
		if err != nil {
			sendErr(ctx, out, &apperrors.StreamError{URL: playlistURL, Err: err})
			return
		}

		// Seed recorded with all but the last segment, so recording
		// starts from the most recent segment rather than replaying
		// the whole window already on the playlist.
		recorded := make(map[string]bool, len(segments))
		for i := 0; i < len(segments)-1; i++ {
			recorded[segments[i]] = true
		}

		for !countdown.Expired() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			segments, err := f.fetchPlaylist(ctx, playlistURL)
			if err != nil {
				sendErr(ctx, out, &apperrors.StreamError{URL: playlistURL, Err: err})
				return
			}

			var fresh []string
			for _, seg := range segments {
				if !recorded[seg] {
					fresh = append(fresh, seg)
				}
			}

			for _, seg := range fresh {
				if countdown.Expired() {
					break
				}
				segURL := resolveSegmentURL(playlistURL, seg)
				if err := f.streamSegment(ctx, segURL, countdown, out); err != nil {
					sendErr(ctx, out, &apperrors.StreamError{URL: segURL, Err: err})
					return
				}
				recorded[seg] = true
			}

			if countdown.Expired() {
				return
			}

			select {
			case <-time.After(f.pollInterval):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (f *HLSFetcher) fetchPlaylist(ctx context.Context, playlistURL string) ([]string, error) {
	body, err := f.client.getBody(ctx, playlistURL)
	if err != nil {
		return nil, err
	}
	return parsePlaylistSegments(string(body)), nil
}

// streamSegment downloads one HLS segment in full, body.Read chunks at
// a time, checking countdown between chunks so a long segment can
// still be broken out of early.
func (f *HLSFetcher) streamSegment(ctx context.Context, segURL string, countdown Countdown, out chan<- Chunk) error {
	body, err := f.client.open(ctx, segURL)
	if err != nil {
		return err
	}
	defer body.Close()

	buf := make([]byte, f.client.chunkSize)
	for {
		if countdown.Expired() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case out <- Chunk{Data: chunk}:
			case <-ctx.Done():
				return nil
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}
