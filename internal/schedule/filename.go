package schedule

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

// filenamePattern is the canonical episode filename grammar shared by
// the recorder (producer) and the feed generator (consumer):
//
//	<YYYY>-<MM>-<DD>--<HHMM>-<HHMM>--<slug>--<uuid>.(mp3|mp4)
var filenamePattern = regexp.MustCompile(
	`^(?P<date>\d{4}-\d{2}-\d{2})--(?P<start>\d{4})-(?P<end>\d{4})--(?P<slug>.+)--(?P<uuid>[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\.(?P<ext>mp3|mp4)$`,
)

// ParsedFilename holds the fields extracted from a canonical episode
// filename.
type ParsedFilename struct {
	Date      string
	StartTime string
	EndTime   string
	Slug      string
	UUID      string
	Ext       string
}

// ParseFilename extracts the canonical grammar's fields from name, the
// episode's basename (not a full path). ok is false for any file that
// doesn't match the grammar or doesn't use a recognized extension.
func ParseFilename(name string) (ParsedFilename, bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return ParsedFilename{}, false
	}
	idx := make(map[string]string, len(m))
	for i, n := range filenamePattern.SubexpNames() {
		if i == 0 || n == "" {
			continue
		}
		idx[n] = m[i]
	}
	return ParsedFilename{
		Date:      idx["date"],
		StartTime: idx["start"],
		EndTime:   idx["end"],
		Slug:      idx["slug"],
		UUID:      idx["uuid"],
		Ext:       idx["ext"],
	}, true
}

// BuildFilePath constructs the canonical episode file path for a task
// firing, with date/start/end all taken from window, formatted in UTC.
func BuildFilePath(outputDir string, window Window, title string, taskID uuid.UUID, ext string) string {
	name := fmt.Sprintf("%s--%s-%s--%s--%s.%s",
		window.Start.Format("2006-01-02"),
		window.Start.Format("1504"),
		window.End.Format("1504"),
		Slug(title),
		taskID.String(),
		ext,
	)
	return filepath.Join(outputDir, name)
}
