// Package stream pulls a finite, cooperatively-cancellable byte
// sequence from either a continuous ICY stream or a polled HLS
// playlist.
package stream

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Chunk is one piece of a fetched audio stream. Err is set, with Data
// nil, on the final value sent before the channel closes because of a
// failure; a countdown expiry or clean EOF closes the channel with no
// error chunk at all.
type Chunk struct {
	Data []byte
	Err  error
}

// Countdown reports how much recording time remains. Fetchers check it
// between chunks (and HLS additionally between segments) to decide
// when to stop; they never own the wall-clock deadline themselves.
type Countdown interface {
	Start()
	Remaining() time.Duration
	Expired() bool
}

// Fetcher pulls audio from sourceURL until countdown expires, ctx is
// canceled, or the stream ends/fails. The returned channel is closed
// exactly once, after the final Chunk (if any) has been sent.
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL string, countdown Countdown) <-chan Chunk
}

// userAgent mirrors a real browser's UA; some ICY/HLS origins reject
// requests from an obvious bot or library client string.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// HTTPChunkClient is the shared HTTP plumbing used by both ICYFetcher
// and HLSFetcher: a client configured not to buffer whole responses,
// reading in caller-sized chunks.
type HTTPChunkClient struct {
	client    *http.Client
	chunkSize int
}

// NewHTTPChunkClient builds a client that reads chunkSize bytes at a
// time. A zero or negative chunkSize falls back to a sane default.
func NewHTTPChunkClient(chunkSize int) *HTTPChunkClient {
	if chunkSize <= 0 {
		chunkSize = 32 * 1024
	}
	return &HTTPChunkClient{
		client:    &http.Client{},
		chunkSize: chunkSize,
	}
}

func (c *HTTPChunkClient) open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Icy-MetaData", "0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &statusError{url: url, status: resp.StatusCode}
	}
	return resp.Body, nil
}

// getBody performs a plain buffered GET, for playlist documents rather
// than audio bodies.
func (c *HTTPChunkClient) getBody(ctx context.Context, url string) ([]byte, error) {
	body, err := c.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
