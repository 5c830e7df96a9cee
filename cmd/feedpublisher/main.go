// Command feedpublisher runs the Feed Publisher service: it watches a
// directory tree of recorded episodes and (re)generates each podcast's
// feed.rss once new episodes stabilise on disk. Entry point structure
// (flag parsing, signal handling) mirrors cmd/recorder's.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/config"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/debounce"
	"github.com/oszuidwest/zwfm-streamcast/internal/feed"
	"github.com/oszuidwest/zwfm-streamcast/internal/logger"
	"github.com/oszuidwest/zwfm-streamcast/internal/version"
	"github.com/oszuidwest/zwfm-streamcast/internal/watcher"
)

func main() {
	configFile := flag.String("config", "config.yml", "config file path")
	logFile := flag.String("log-file", "", "log file path (optional, logs to stdout too)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := logger.New(*logFile, *debug)
	defer log.Close()
	log.Info(version.Info("feedpublisher"))

	cfg, err := config.LoadFeedPublisherConfig(*configFile)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	c := clock.New()
	gen := feed.New(c)

	if cfg.ShouldUpdateFeedsOnStartup {
		regenerateAllFeeds(gen, cfg.BaseDirectory, cfg.BaseURL, log)
	}

	w := watcher.New(cfg.BaseDirectory, constants.DefaultWatchPollInterval)
	events := make(chan watcher.Event, 64)

	d := debounce.New(c, constants.DefaultDebounceTime, func(e debounce.Event) {
		regenerateOne(gen, e.EpisodePath, cfg.BaseDirectory, cfg.BaseURL, log)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, events)
	}()

	go func() {
		for ev := range events {
			d.Handle(ev)
		}
	}()

	<-ctx.Done()
	<-done
}

// regenerateAllFeeds walks baseDir's immediate subdirectories and
// regenerates each one's feed.rss. An empty podcast directory still
// gets a feed.rss with zero items.
func regenerateAllFeeds(gen *feed.Generator, baseDir, baseURL string, log *logger.Logger) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		log.Error("failed to read base directory", "dir", baseDir, "error", err)
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, e.Name())
		if err := gen.Generate(dir, titleFromDirName(e.Name()), baseURL); err != nil {
			log.Error("failed to generate feed on startup", "dir", dir, "error", err)
			continue
		}
		log.Info("regenerated feed on startup", "dir", dir)
	}
}

// regenerateOne regenerates the feed for the podcast directory
// containing episodePath, which must be a direct child of baseDir.
func regenerateOne(gen *feed.Generator, episodePath, baseDir, baseURL string, log *logger.Logger) {
	podcastDir := filepath.Dir(episodePath)
	if filepath.Dir(podcastDir) != filepath.Clean(baseDir) {
		// Not a top-level podcast directory episode; ignore.
		return
	}
	title := titleFromDirName(filepath.Base(podcastDir))
	if err := gen.Generate(podcastDir, title, baseURL); err != nil {
		log.Error("failed to regenerate feed", "dir", podcastDir, "error", err)
		return
	}
	log.Info("podcast updated", "dir", podcastDir, "episode", episodePath)
}

// titleFromDirName derives a fallback podcast title from a slug
// directory name when metadata.yml carries none of its own.
func titleFromDirName(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
