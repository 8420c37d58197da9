package camtparser

import (
	"bytes"
	"io"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/pipelineerror"

	"gopkg.in/xmlpath.v2"
)

var (
	statementPath = xmlpath.MustCompile("//BkToCstmrStmt/Stmt")
	accountPath   = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Acct/Id")
)

// ValidateFormat reports whether r looks like a CAMT.053 statement: well-formed
// XML with at least one BkToCstmrStmt/Stmt carrying an account id. It does not
// check entries; Parse does that. The error is non-nil only when r fails.
func (p *Parser) ValidateFormat(r io.Reader) (bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return false, &pipelineerror.InputIOError{Path: "<reader>", Err: err}
	}

	logger := p.GetLogger().WithField(logging.FieldParser, parserName)

	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		logger.WithError(err).Debug("Input is not well-formed XML")
		return false, nil
	}

	if !statementPath.Exists(root) {
		logger.Debug("Missing BkToCstmrStmt/Stmt element, not a CAMT.053 file")
		return false, nil
	}
	if !accountPath.Exists(root) {
		logger.Debug("Missing statement account id, not a valid CAMT.053 file")
		return false, nil
	}

	return true, nil
}
