package camtparser

import (
	"encoding/xml"
	"errors"

	"fjacquet/camt-ynab/internal/models"
)

// Decoder turns raw statement bytes into the CAMT.053 statement model.
type Decoder interface {
	Decode(data []byte) (*models.Document, error)
}

// XMLDecoder decodes CAMT.053 documents with encoding/xml.
type XMLDecoder struct{}

// Decode unmarshals data. A document that is not well-formed, whose root is not
// Document, or that carries an unknown credit/debit indicator is rejected.
func (XMLDecoder) Decode(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// StubDecoder ignores its input and returns a preset document or error. It lets
// tests drive the extractor without writing XML.
type StubDecoder struct {
	Document *models.Document
	Err      error
}

// NewStubDecoder returns a StubDecoder that always yields doc.
func NewStubDecoder(doc models.Document) *StubDecoder {
	return &StubDecoder{Document: &doc}
}

// Decode returns the preset error, or the preset document.
func (s *StubDecoder) Decode([]byte) (*models.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Document == nil {
		return nil, errors.New("stub decoder has no document")
	}
	doc := *s.Document
	return &doc, nil
}
