// Package pipeline runs one statement conversion: read the file, extract its
// entries, categorize them and serialize the result to YNAB CSV.
package pipeline

import (
	"bytes"
	"io"

	"fjacquet/camt-ynab/internal/categorizer"
	"fjacquet/camt-ynab/internal/fileutils"
	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/outputtracker"
	"fjacquet/camt-ynab/internal/pipelineerror"
)

// EntryParser extracts entries from raw statement bytes.
type EntryParser interface {
	ParseBytes(data []byte) ([]models.Entry, error)
}

// FormatValidator is implemented by parsers that can sniff their input format.
type FormatValidator interface {
	ValidateFormat(r io.Reader) (bool, error)
}

// Categorizer post-processes extracted entries.
type Categorizer interface {
	Apply(entries []models.Entry, opts categorizer.Options) []models.Entry
}

// Encoder renders entries as output text.
type Encoder interface {
	Serialize(entries []models.Entry) (string, error)
}

// Pipeline wires the conversion stages. Each Run is synchronous and a failing
// stage stops the run.
type Pipeline struct {
	reader      fileutils.Reader
	parser      EntryParser
	categorizer Categorizer
	encoder     Encoder
	logger      logging.Logger
	output      *outputtracker.Listener[string]
}

// New returns a Pipeline over the given stages.
func New(reader fileutils.Reader, parser EntryParser, cat Categorizer, encoder Encoder, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		reader:      reader,
		parser:      parser,
		categorizer: cat,
		encoder:     encoder,
		logger:      logger,
		output:      outputtracker.NewListener[string](),
	}
}

// TrackOutput returns a tracker receiving the CSV text of every successful run.
func (p *Pipeline) TrackOutput() *outputtracker.Tracker[string] {
	return p.output.NewTracker()
}

// Run converts the statement at path and returns the CSV text. Errors are the
// typed errors of the failing stage.
func (p *Pipeline) Run(path string, opts categorizer.Options) (string, error) {
	logger := p.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldAccount, Value: opts.Account},
	)

	data, err := p.reader.ReadFile(path)
	if err != nil {
		logger.WithError(err).Error("Failed to read statement", logging.Field{Key: logging.FieldStage, Value: "read"})
		return "", err
	}

	entries, err := p.parser.ParseBytes(data)
	if err != nil {
		logger.WithError(err).Error("Failed to parse statement", logging.Field{Key: logging.FieldStage, Value: "parse"})
		return "", err
	}

	kept := p.categorizer.Apply(entries, opts)

	out, err := p.encoder.Serialize(kept)
	if err != nil {
		logger.WithError(err).Error("Failed to serialize entries", logging.Field{Key: logging.FieldStage, Value: "serialize"})
		return "", err
	}

	logger.Info("Converted statement",
		logging.Field{Key: "extracted", Value: len(entries)},
		logging.Field{Key: logging.FieldCount, Value: len(kept)})
	p.output.Track(out)
	return out, nil
}

// Validate reads path and reports whether the parser recognises its format.
// An InvalidFormatError is returned when it does not.
func (p *Pipeline) Validate(path, expectedFormat string) error {
	validator, ok := p.parser.(FormatValidator)
	if !ok {
		return nil
	}

	data, err := p.reader.ReadFile(path)
	if err != nil {
		return err
	}

	valid, err := validator.ValidateFormat(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if !valid {
		p.logger.Warn("File is not a valid statement",
			logging.Field{Key: logging.FieldFile, Value: path})
		return &pipelineerror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: expectedFormat,
			Msg:            "file is not a valid statement",
		}
	}
	return nil
}
