// Package metadata implements optional schedule metadata enrichment:
// fetching a value from metadata_url (and narrowing it with
// metadata_json_path) and merging it into a schedule's persisted
// metadata.yml.
package metadata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// Fetcher retrieves enrichment metadata from an external source.
type Fetcher struct {
	client *http.Client
}

// New builds a Fetcher with a bounded request timeout.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves content from sourceURL. If jsonPath is non-empty the
// response is parsed as JSON and the value at jsonPath extracted;
// otherwise the raw trimmed body is returned. Failures are logged and
// treated as "no enrichment available" (empty string), not fatal: a
// misbehaving enrichment endpoint must never stop recording.
func (f *Fetcher) Fetch(sourceURL, jsonPath string) string {
	if sourceURL == "" {
		return ""
	}

	resp, err := f.client.Get(sourceURL)
	if err != nil {
		apperrors.LogErrorContinue(context.Background(), "fetch schedule metadata", err)
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apperrors.LogErrorContinue(context.Background(), "read schedule metadata response", err)
		return ""
	}

	if jsonPath == "" {
		return strings.TrimSpace(string(body))
	}

	result := gjson.GetBytes(body, jsonPath)
	if !result.Exists() {
		apperrors.LogErrorContinue(context.Background(), "locate schedule metadata json path", &pathNotFoundError{jsonPath: jsonPath})
		return ""
	}
	return result.String()
}

type pathNotFoundError struct{ jsonPath string }

func (e *pathNotFoundError) Error() string {
	return "json path not found: " + e.jsonPath
}
