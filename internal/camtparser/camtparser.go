// Package camtparser extracts canonical entries from CAMT.053 bank statements.
package camtparser

import (
	"errors"
	"io"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/parser"
	"fjacquet/camt-ynab/internal/pipelineerror"
)

const parserName = "CAMT"

// Parser implements parser.Parser for CAMT.053 XML documents.
type Parser struct {
	parser.BaseParser
	decoder Decoder
}

var _ parser.Parser = (*Parser)(nil)

// NewParser returns a Parser that decodes real XML.
func NewParser(logger logging.Logger) *Parser {
	return NewParserWithDecoder(XMLDecoder{}, logger)
}

// NewParserWithDecoder returns a Parser using the given decoder.
func NewParserWithDecoder(decoder Decoder, logger logging.Logger) *Parser {
	if decoder == nil {
		decoder = XMLDecoder{}
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		decoder:    decoder,
	}
}

// Parse reads the whole statement from r and extracts its entries.
func (p *Parser) Parse(r io.Reader) ([]models.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &pipelineerror.InputIOError{Path: "<reader>", Err: err}
	}
	return p.ParseBytes(data)
}

// ParseBytes extracts the entries of an in-memory statement. Either all entries
// are returned or none.
func (p *Parser) ParseBytes(data []byte) ([]models.Entry, error) {
	logger := p.GetLogger().WithField(logging.FieldParser, parserName)
	logger.Debug("Decoding CAMT.053 document", logging.Field{Key: logging.FieldBytes, Value: len(data)})

	doc, err := p.decoder.Decode(data)
	if err != nil {
		logger.WithError(err).Error("Failed to decode CAMT.053 document")
		return nil, &pipelineerror.ParseError{
			Parser: parserName,
			Field:  "XML document",
			Err:    err,
		}
	}
	if doc == nil {
		return nil, &pipelineerror.ParseError{
			Parser: parserName,
			Field:  "XML document",
			Err:    errors.New("decoder returned no document"),
		}
	}

	entries, err := ExtractEntries(doc)
	if err != nil {
		logger.WithError(err).Error("Failed to extract entries")
		return nil, err
	}

	logger.Info("Extracted entries from CAMT.053 document",
		logging.Field{Key: "statements", Value: len(doc.Statements())},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}
