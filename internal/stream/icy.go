package stream

import (
	"context"
	"io"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// ICYFetcher reads a single continuous HTTP response body in fixed-size
// chunks until the countdown expires, the stream ends, or it errors.
// ICY streams never terminate on their own; the countdown is the only
// normal exit.
type ICYFetcher struct {
	client *HTTPChunkClient
}

// NewICYFetcher builds an ICYFetcher using client for the underlying
// HTTP reads.
func NewICYFetcher(client *HTTPChunkClient) *ICYFetcher {
	return &ICYFetcher{client: client}
}

// Fetch implements Fetcher.
func (f *ICYFetcher) Fetch(ctx context.Context, sourceURL string, countdown Countdown) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		countdown.Start()

		body, err := f.client.open(ctx, sourceURL)
		if err != nil {
			sendErr(ctx, out, &apperrors.StreamError{URL: sourceURL, Err: err})
			return
		}
		defer body.Close()

		buf := make([]byte, f.client.chunkSize)
		for {
			if countdown.Expired() {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}

			n, readErr := body.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case out <- Chunk{Data: chunk}:
				case <-ctx.Done():
					return
				}
			}
			if readErr != nil {
				if readErr != io.EOF {
					sendErr(ctx, out, &apperrors.StreamError{URL: sourceURL, Err: readErr})
				}
				return
			}
		}
	}()
	return out
}

func sendErr(ctx context.Context, out chan<- Chunk, err error) {
	select {
	case out <- Chunk{Err: err}:
	case <-ctx.Done():
	}
}
