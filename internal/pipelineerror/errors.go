// Package pipelineerror defines the typed failures returned by each stage of the
// statement conversion pipeline. Callers match them with errors.As.
package pipelineerror

import "fmt"

// InputIOError is returned when the source statement file cannot be read.
type InputIOError struct {
	Path string
	Err  error
}

func (e *InputIOError) Error() string {
	return fmt.Sprintf("cannot read input file '%s': %v", e.Path, e.Err)
}

func (e *InputIOError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the XML is not well-formed or does not have the
// expected statement shape.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError is returned when the configuration file is missing, unreadable
// or malformed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration in '%s': %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PatternError is returned when a configured payee regular expression does not compile.
type PatternError struct {
	Label   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("payee rule '%s': cannot compile pattern '%s': %v",
		e.Label, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// SerializationError is returned when the CSV output cannot be produced. Row is
// the zero-based entry index, or -1 when the failure is not tied to one row.
type SerializationError struct {
	Row   int
	Field string
	Err   error
}

func (e *SerializationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("csv serialization failed: %v", e.Err)
	}
	return fmt.Sprintf("csv serialization failed at row %d (%s): %v", e.Row, e.Field, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
