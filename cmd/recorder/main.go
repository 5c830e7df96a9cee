// Command recorder runs the Recorder service: it loads a stream URL
// and a set of recording schedules from YAML, then arms a scheduler
// that records each schedule's daily window to disk. Recorder and
// Feed Publisher run as independent processes, each with its own
// config file and lifecycle.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/config"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/logger"
	"github.com/oszuidwest/zwfm-streamcast/internal/recorder"
	"github.com/oszuidwest/zwfm-streamcast/internal/stream"
	"github.com/oszuidwest/zwfm-streamcast/internal/version"
)

func main() {
	configFile := flag.String("config", "config.yml", "config file path")
	logFile := flag.String("log-file", "", "log file path (optional, logs to stdout too)")
	debug := flag.Bool("debug", false, "enable debug logging")
	testMode := flag.Bool("test", false, "run a short test recording and exit")
	flag.Parse()

	log := logger.New(*logFile, *debug)
	defer log.Close()
	log.Info(version.Info("recorder"))

	c := clock.New()

	cfg, err := config.LoadRecorderConfig(*configFile, c.Now())
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	httpClient := stream.NewHTTPChunkClient(constants.DefaultChunkSize)
	fetcherFor := func(sourceURL string) stream.Fetcher {
		return stream.ForURL(sourceURL, httpClient, constants.DefaultHLSPollInterval)
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

	if *testMode {
		runTestRecording(ctx, c, cfg, fetcherFor, log)
		return
	}

	sched := recorder.New(c, log, fetcherFor)
	for _, s := range cfg.Schedules {
		if err := sched.Add(s, cfg.StreamURL); err != nil {
			log.Error("failed to arm schedule", "schedule", s.Title, "error", err)
			os.Exit(1)
		}
	}

	sched.Run()
	<-ctx.Done()
	sched.Stop()
}

// runTestRecording records 10 seconds from the first configured
// schedule's source stream and exits, for operators validating a
// stream URL without waiting for a real firing.
func runTestRecording(ctx context.Context, c clock.Clock, cfg *config.RecorderConfig, fetcherFor func(string) stream.Fetcher, log *logger.Logger) {
	if len(cfg.Schedules) == 0 {
		log.Error("no schedules configured, nothing to test")
		return
	}
	fetcher := fetcherFor(string(cfg.StreamURL))
	timer := recorder.NewCountdownTimer(c, 10*time.Second)
	chunks := fetcher.Fetch(ctx, string(cfg.StreamURL), timer)

	var total int64
	for chunk := range chunks {
		if chunk.Err != nil {
			log.Error("test recording failed", "error", chunk.Err)
			return
		}
		total += int64(len(chunk.Data))
	}
	log.Info("test recording complete", "bytes_received", total)
}
