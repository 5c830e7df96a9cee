// Package feed maps a podcast directory's episode files to an RSS 2.0
// document and writes it atomically, built against
// github.com/gorilla/feeds.
package feed

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/feeds"
	"gopkg.in/yaml.v3"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/schedule"
)

// podcastMetadata is the subset of metadata.yml fields the feed
// generator reads; unknown keys are ignored.
type podcastMetadata struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Generator writes podcast RSS feeds. Its writeMu serializes feed.rss
// writes across the whole process: not against episode writes (those
// touch different files entirely), only against other concurrent feed
// regenerations through the same Generator.
type Generator struct {
	clock   clock.Clock
	writeMu sync.Mutex
}

// New returns a Generator ready for concurrent use, stamping each
// regenerated feed's build time from c.
func New(c clock.Clock) *Generator {
	return &Generator{clock: c}
}

// Generate reads podcastDir's episode files and metadata.yml, and
// atomically writes podcastDir/feed.rss as RSS 2.0. baseURL is the
// publisher's configured public base URL; the episode URL is
// base_url/slug(podcast title)/file_name. podcastTitle names the feed
// when metadata.yml carries no title of its own.
func (g *Generator) Generate(podcastDir, podcastTitle, baseURL string) error {
	entries, err := os.ReadDir(podcastDir)
	if err != nil {
		return &apperrors.AudioStorageError{Path: podcastDir, Err: err}
	}

	meta := readMetadata(podcastDir)
	title := podcastTitle
	if meta.Title != "" {
		title = meta.Title
	}
	description := meta.Description
	if description == "" {
		description = title
	}

	slug := schedule.Slug(title)
	podcastURL := joinURL(baseURL, slug)

	f := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: podcastURL},
		Description: description,
		Created:     g.clock.Now(),
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := schedule.ParseFilename(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		parsed, _ := schedule.ParseFilename(name)
		info, err := os.Stat(filepath.Join(podcastDir, name))
		if err != nil {
			continue
		}
		pubDate, err := time.Parse("2006-01-02", parsed.Date)
		if err != nil {
			continue
		}

		episodeURL := joinURL(baseURL, slug, name)
		mimeType := "audio/mpeg"
		if parsed.Ext == "mp4" {
			mimeType = "audio/mp4"
		}

		f.Items = append(f.Items, &feeds.Item{
			Title:       parsed.Date,
			Link:        &feeds.Link{Href: episodeURL},
			Id:          parsed.UUID,
			IsPermaLink: "true",
			Created:     pubDate,
			Enclosure: &feeds.Enclosure{
				Url:    episodeURL,
				Length: fmt.Sprintf("%d", info.Size()),
				Type:   mimeType,
			},
		})
	}

	rss, err := f.ToRss()
	if err != nil {
		return &apperrors.AudioStorageError{Path: podcastDir, Err: err}
	}

	return g.writeAtomic(filepath.Join(podcastDir, constants.FeedFileName), []byte(rss))
}

func readMetadata(podcastDir string) podcastMetadata {
	var meta podcastMetadata
	data, err := os.ReadFile(filepath.Join(podcastDir, constants.MetadataFileName))
	if err != nil {
		return meta
	}
	_ = yaml.Unmarshal(data, &meta)
	return meta
}

func joinURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return strings.Join(append([]string{base}, segments...), "/")
	}
	parts := append([]string{strings.TrimSuffix(u.Path, "/")}, segments...)
	u.Path = strings.Join(parts, "/")
	return u.String()
}

// writeAtomic writes data to path by writing to a temp file in the
// same directory and renaming over path, serialized against other
// feed writes through this Generator.
func (g *Generator) writeAtomic(path string, data []byte) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		return &apperrors.AudioStorageError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &apperrors.AudioStorageError{Path: path, Err: err}
	}
	return nil
}
