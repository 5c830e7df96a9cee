// Package config loads the Recorder and Feed Publisher's YAML
// configuration files with spf13/viper into two service-specific
// loaders, with required-key validation against apperrors.ConfigError.
package config

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
	"github.com/oszuidwest/zwfm-streamcast/internal/metadata"
	"github.com/oszuidwest/zwfm-streamcast/internal/schedule"
)

// RecorderConfig is the fully validated, resolved configuration for
// the Recorder service: one stream URL and a set of independent
// recording schedules against it.
type RecorderConfig struct {
	StreamURL schedule.ValidURL
	OutputDir string
	TimeZone  string
	Schedules []*schedule.Schedule
}

// FeedPublisherConfig is the fully validated configuration for the
// Feed Publisher service.
type FeedPublisherConfig struct {
	BaseDirectory              string
	BaseURL                    string
	ShouldUpdateFeedsOnStartup bool
}

type rawSchedule struct {
	Title            string `mapstructure:"title"`
	StartTimeOfDay   string `mapstructure:"start_timeofday"`
	EndTimeOfDay     string `mapstructure:"end_timeofday"`
	Description      string `mapstructure:"description"`
	ImageURL         string `mapstructure:"image_url"`
	Frequency        string `mapstructure:"frequency"`
	MetadataURL      string `mapstructure:"metadata_url"`
	MetadataJSONPath string `mapstructure:"metadata_json_path"`
}

type rawRecorderConfig struct {
	StreamURL          string        `mapstructure:"stream_url"`
	OutputDir          string        `mapstructure:"output_dir"`
	TimeZone           string        `mapstructure:"time_zone"`
	RecordingSchedules []rawSchedule `mapstructure:"recording_schedules"`
}

type rawFeedPublisherConfig struct {
	BaseDirectory              string `mapstructure:"base_directory"`
	BaseURL                    string `mapstructure:"base_url"`
	ShouldUpdateFeedsOnStartup bool   `mapstructure:"should_update_feeds_on_startup"`
}

// LoadRecorderConfig reads and validates the Recorder's YAML config at
// path. now anchors each schedule's local->UTC conversion.
func LoadRecorderConfig(path string, now time.Time) (*RecorderConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.NewConfigError("read config file", err)
	}

	var raw rawRecorderConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, apperrors.NewConfigError("parse config file", err)
	}

	if raw.StreamURL == "" {
		return nil, apperrors.NewConfigError("missing key: stream_url", nil)
	}
	if raw.OutputDir == "" {
		return nil, apperrors.NewConfigError("missing key: output_dir", nil)
	}
	if raw.TimeZone == "" {
		return nil, apperrors.NewConfigError("missing key: time_zone", nil)
	}
	if len(raw.RecordingSchedules) == 0 {
		return nil, apperrors.NewConfigError("missing key: recording_schedules (must be non-empty)", nil)
	}

	streamURL, err := schedule.NewValidURL(raw.StreamURL)
	if err != nil {
		return nil, apperrors.NewConfigError("stream_url", err)
	}

	loc, err := time.LoadLocation(raw.TimeZone)
	if err != nil {
		return nil, apperrors.NewConfigError("time_zone", err)
	}

	audioFormat := schedule.AudioFormatForURL(raw.StreamURL)
	fetcher := metadata.New()

	schedules := make([]*schedule.Schedule, 0, len(raw.RecordingSchedules))
	for _, rs := range raw.RecordingSchedules {
		if strings.TrimSpace(rs.Title) == "" {
			return nil, apperrors.NewConfigError("missing key: recording_schedules[].title", nil)
		}
		if rs.StartTimeOfDay == "" {
			return nil, apperrors.NewConfigError("missing key: recording_schedules[].start_timeofday", nil)
		}
		if rs.EndTimeOfDay == "" {
			return nil, apperrors.NewConfigError("missing key: recording_schedules[].end_timeofday", nil)
		}

		startTOD, err := schedule.ParseTimeOfDay(rs.StartTimeOfDay)
		if err != nil {
			return nil, apperrors.NewConfigError("recording_schedules[].start_timeofday", err)
		}
		endTOD, err := schedule.ParseTimeOfDay(rs.EndTimeOfDay)
		if err != nil {
			return nil, apperrors.NewConfigError("recording_schedules[].end_timeofday", err)
		}

		var imageURL schedule.ValidURL
		if rs.ImageURL != "" {
			imageURL, err = schedule.NewValidURL(rs.ImageURL)
			if err != nil {
				return nil, apperrors.NewConfigError("recording_schedules[].image_url", err)
			}
		}

		meta := map[string]any{}
		if rs.MetadataURL != "" {
			if value := fetcher.Fetch(rs.MetadataURL, rs.MetadataJSONPath); value != "" {
				meta["enrichment"] = value
			}
		}

		sched, err := schedule.NewSchedule(
			rs.Title, startTOD, endTOD, loc, audioFormat,
			raw.OutputDir, meta, rs.Frequency, rs.Description, imageURL, now,
		)
		if err != nil {
			return nil, apperrors.NewConfigError("recording_schedules[]", err)
		}
		schedules = append(schedules, sched)
	}

	return &RecorderConfig{
		StreamURL: streamURL,
		OutputDir: raw.OutputDir,
		TimeZone:  raw.TimeZone,
		Schedules: schedules,
	}, nil
}

// LoadFeedPublisherConfig reads and validates the Feed Publisher's
// YAML config at path.
func LoadFeedPublisherConfig(path string) (*FeedPublisherConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.NewConfigError("read config file", err)
	}

	var raw rawFeedPublisherConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, apperrors.NewConfigError("parse config file", err)
	}

	if raw.BaseDirectory == "" {
		return nil, apperrors.NewConfigError("missing key: base_directory", nil)
	}
	if err := checkDirReadable(raw.BaseDirectory); err != nil {
		return nil, apperrors.NewConfigError("base_directory", err)
	}
	if raw.BaseURL == "" {
		return nil, apperrors.NewConfigError("missing key: base_url", nil)
	}
	if _, err := schedule.NewValidURL(raw.BaseURL); err != nil {
		return nil, apperrors.NewConfigError("base_url", err)
	}

	return &FeedPublisherConfig{
		BaseDirectory:              raw.BaseDirectory,
		BaseURL:                    raw.BaseURL,
		ShouldUpdateFeedsOnStartup: raw.ShouldUpdateFeedsOnStartup,
	}, nil
}

// checkDirReadable reports whether dir exists and its entries can be
// listed, the Go equivalent of os.access(dir, os.R_OK).
func checkDirReadable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
