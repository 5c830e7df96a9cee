// Package apperrors defines the error kinds from the error-handling design
// (ConfigError, InvalidUrl, StreamError, AudioStorageError,
// FilesystemEventError) and the structured logging helpers used to report
// them without aborting the owning component.
package apperrors

import (
	"context"
	"fmt"
	"log/slog"
)

var defaultLogger = slog.Default()

// ConfigError indicates a fatal problem found while loading configuration.
// The caller is expected to log it and abort before the scheduler starts.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Msg, e.Err)
	}
	return "config error: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err (which may be nil) with msg as a ConfigError.
func NewConfigError(msg string, err error) *ConfigError {
	return &ConfigError{Msg: msg, Err: err}
}

// InvalidURLError reports a string that failed to parse as an absolute
// http/https URL. It is always surfaced to callers wrapped in a ConfigError.
type InvalidURLError struct {
	Value string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %q", e.Value)
}

// StreamError reports a per-task failure to fetch audio from a source URL.
// Policy: log with task id + URL, continue to the next firing.
type StreamError struct {
	URL string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error for %s: %v", e.URL, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// AudioStorageError reports a per-task failure to write the audio file.
// The partial file is left in place for inspection; policy: log, continue.
type AudioStorageError struct {
	Path string
	Err  error
}

func (e *AudioStorageError) Error() string {
	return fmt.Sprintf("audio storage error for %s: %v", e.Path, e.Err)
}

func (e *AudioStorageError) Unwrap() error { return e.Err }

// FilesystemEventError reports a failure observed by the directory watcher
// while polling. Policy: log, watcher keeps running at the next poll tick.
type FilesystemEventError struct {
	Path string
	Err  error
}

func (e *FilesystemEventError) Error() string {
	return fmt.Sprintf("filesystem event error for %s: %v", e.Path, e.Err)
}

func (e *FilesystemEventError) Unwrap() error { return e.Err }

// LogError provides structured error logging and returns the error,
// wrapped with action context.
func LogError(ctx context.Context, action string, err error, attrs ...slog.Attr) error {
	wrapped := fmt.Errorf("failed to %s: %w", action, err)

	args := make([]any, 0, 2+2*len(attrs))
	args = append(args, slog.String("action", action), slog.Any("error", err))
	for _, a := range attrs {
		args = append(args, a)
	}

	defaultLogger.ErrorContext(ctx, wrapped.Error(), args...)
	return wrapped
}

// LogErrorContinue logs an error but does not return it; used at the
// per-task and per-poll boundaries where the caller must keep running.
func LogErrorContinue(ctx context.Context, action string, err error, attrs ...slog.Attr) {
	LogError(ctx, action, err, attrs...)
}
