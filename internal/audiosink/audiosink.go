// Package audiosink writes a fetched byte stream to a file under an
// output directory, ensuring the directory and a companion metadata
// file exist first.
package audiosink

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/stream"
)

// Sink writes fetched audio streams to disk. Its metadataMu serializes
// metadata.yml creation across concurrent recordings through the same
// Sink that happen to land in the same output directory.
type Sink struct {
	metadataMu sync.Mutex
}

// New returns a Sink ready for concurrent use.
func New() *Sink {
	return &Sink{}
}

// Store consumes chunks from in and writes them to outputPath,
// truncating any existing file. It ensures outputPath's parent
// directory exists and is writable, and writes parent/metadata.yml
// from metadata if that file does not already exist. On a write failure
// it closes the output file and returns an AudioStorageError; an error
// chunk from the fetcher is returned as-is. Either way the partial
// file, if any bytes were already written, is left on disk.
func (s *Sink) Store(in <-chan stream.Chunk, outputPath string, metadata map[string]any) (int64, error) {
	dir := filepath.Dir(outputPath)
	if err := ensureWritableDir(dir); err != nil {
		return 0, &apperrors.AudioStorageError{Path: outputPath, Err: err}
	}
	if err := s.writeMetadataIfAbsent(dir, metadata); err != nil {
		return 0, &apperrors.AudioStorageError{Path: outputPath, Err: err}
	}

	f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return 0, &apperrors.AudioStorageError{Path: outputPath, Err: err}
	}
	defer f.Close()

	var written int64
	for chunk := range in {
		if chunk.Err != nil {
			// Already a StreamError from the fetcher; don't reclassify
			// it as a storage failure.
			return written, chunk.Err
		}
		n, werr := f.Write(chunk.Data)
		written += int64(n)
		if werr != nil {
			return written, &apperrors.AudioStorageError{Path: outputPath, Err: werr}
		}
	}
	return written, nil
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".write-probe")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}

func (s *Sink) writeMetadataIfAbsent(dir string, metadata map[string]any) error {
	s.metadataMu.Lock()
	defer s.metadataMu.Unlock()

	path := filepath.Join(dir, constants.MetadataFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	data, err := yaml.Marshal(metadata)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, constants.FilePermissions)
}
