// Package ynabcsv writes entries in the YNAB CSV import layout.
package ynabcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/pipelineerror"

	"github.com/gocarina/gocsv"
)

// Header is the first line of every output.
const Header = "Date,Payee,Memo,Outflow,Inflow"

// Row is one output line. Absent entry fields are written as empty cells.
type Row struct {
	Date    string `csv:"Date"`
	Payee   string `csv:"Payee"`
	Memo    string `csv:"Memo"`
	Outflow string `csv:"Outflow"`
	Inflow  string `csv:"Inflow"`
}

// lineBreak matches a line feed together with any carriage returns before it.
// CSV readers fold "\r\n" inside quoted cells into "\n".
var lineBreak = regexp.MustCompile(`\r+\n`)

// NewRow converts an entry. The account and remittance are not exported.
// Line breaks inside values are written as "\n"; a lone "\r" is kept.
func NewRow(e models.Entry) Row {
	return Row{
		Date:    cell(e.Date),
		Payee:   cell(models.Deref(e.Payee)),
		Memo:    cell(models.Deref(e.Memo)),
		Outflow: cell(models.Deref(e.Outflow)),
		Inflow:  cell(models.Deref(e.Inflow)),
	}
}

func cell(value string) string {
	if !strings.Contains(value, "\r") {
		return value
	}
	return lineBreak.ReplaceAllString(value, "\n")
}

func (r Row) fields() [5]struct{ name, value string } {
	return [5]struct{ name, value string }{
		{"Date", r.Date},
		{"Payee", r.Payee},
		{"Memo", r.Memo},
		{"Outflow", r.Outflow},
		{"Inflow", r.Inflow},
	}
}

// Serializer renders entries as CSV text.
type Serializer struct {
	delimiter rune
	logger    logging.Logger
}

// NewSerializer returns a Serializer using delimiter between fields. A zero
// delimiter selects ','.
func NewSerializer(delimiter rune, logger logging.Logger) *Serializer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Serializer{delimiter: delimiter, logger: logger}
}

// Delimiter returns the field delimiter.
func (s *Serializer) Delimiter() rune {
	return s.delimiter
}

// Serialize writes the header followed by one row per entry, in order, with
// "\n" line endings. On failure it returns "" and a SerializationError; output
// is never partial.
func (s *Serializer) Serialize(entries []models.Entry) (string, error) {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		row := NewRow(e)
		for _, f := range row.fields() {
			if !utf8.ValidString(f.value) {
				return "", s.fail(&pipelineerror.SerializationError{
					Row:   i,
					Field: f.name,
					Err:   errors.New("value is not valid UTF-8"),
				})
			}
		}
		rows = append(rows, row)
	}

	var out strings.Builder
	csvWriter := csv.NewWriter(&out)
	csvWriter.Comma = s.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return "", s.fail(&pipelineerror.SerializationError{
			Row: -1,
			Err: fmt.Errorf("error writing CSV data: %w", err),
		})
	}

	s.logger.Debug("Serialized entries to CSV",
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(s.delimiter)})
	return out.String(), nil
}

func (s *Serializer) fail(err *pipelineerror.SerializationError) error {
	s.logger.WithError(err).Error("Failed to serialize entries")
	return err
}
