// Package fileutils provides the file access used by the converter behind a
// Reader boundary, with an OS-backed and a stubbed implementation.
package fileutils

import (
	"errors"
	"os"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/pipelineerror"
)

// Reader reads a whole file.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// OSReader reads from the local filesystem.
type OSReader struct {
	logger logging.Logger
}

// NewOSReader returns an OSReader. A nil logger selects the default logrus adapter.
func NewOSReader(logger logging.Logger) *OSReader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &OSReader{logger: logger}
}

// ReadFile returns the contents of path. Any failure, including path being a
// directory, is an InputIOError.
func (r *OSReader) ReadFile(path string) ([]byte, error) {
	logger := r.logger.WithField(logging.FieldFile, path)

	if DirectoryExists(path) {
		return nil, &pipelineerror.InputIOError{Path: path, Err: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).Error("Failed to read file")
		return nil, &pipelineerror.InputIOError{Path: path, Err: err}
	}

	logger.Debug("Read file", logging.Field{Key: logging.FieldBytes, Value: len(data)})
	return data, nil
}

// StubReader returns fixed contents for any path and records the paths asked for.
type StubReader struct {
	Contents []byte
	Err      error
	Paths    []string
}

// NewStubReader returns a StubReader serving contents.
func NewStubReader(contents string) *StubReader {
	return &StubReader{Contents: []byte(contents)}
}

// ReadFile returns a copy of the preset contents, or the preset error wrapped
// in an InputIOError.
func (s *StubReader) ReadFile(path string) ([]byte, error) {
	s.Paths = append(s.Paths, path)
	if s.Err != nil {
		return nil, &pipelineerror.InputIOError{Path: path, Err: s.Err}
	}
	return append([]byte(nil), s.Contents...), nil
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
