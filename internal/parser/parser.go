// Package parser declares the statement parser boundary and the logger plumbing
// shared by parser implementations.
package parser

import (
	"io"

	"fjacquet/camt-ynab/internal/models"
)

// Parser turns a statement export into canonical entries.
//
// Implementations either return every entry of the input or an error; they never
// return a partial result. Failures are reported as *pipelineerror.ParseError.
type Parser interface {
	Parse(r io.Reader) ([]models.Entry, error)
}
