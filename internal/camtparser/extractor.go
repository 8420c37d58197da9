package camtparser

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/pipelineerror"

	"github.com/shopspring/decimal"
)

// payeeMemoSeparator splits remittance text of the form "Payee > Memo".
const payeeMemoSeparator = ">"

var errMissing = errors.New("required element is missing")

// ExtractEntries maps every ledger entry of doc to an Entry, keeping statement
// order and entry order. Entries inherit the account of their statement block.
//
// A document without a statement message, or a single malformed statement or
// entry, fails the whole document; no entries are returned in that case.
func ExtractEntries(doc *models.Document) ([]models.Entry, error) {
	if doc == nil || doc.BkToCstmrStmt == nil {
		return nil, &pipelineerror.ParseError{
			Parser: parserName,
			Field:  "BkToCstmrStmt",
			Err:    errMissing,
		}
	}

	total := 0
	for _, stmt := range doc.Statements() {
		total += len(stmt.Ntry)
	}
	entries := make([]models.Entry, 0, total)

	for s, stmt := range doc.Statements() {
		account := stmt.Acct.Identifier()
		if account == "" {
			return nil, &pipelineerror.ParseError{
				Parser: parserName,
				Field:  fmt.Sprintf("Stmt[%d]/Acct/Id", s),
				Value:  stmt.ID,
				Err:    errMissing,
			}
		}

		for n := range stmt.Ntry {
			entry, err := extractEntry(account, &stmt.Ntry[n])
			if err != nil {
				var parseErr *pipelineerror.ParseError
				if errors.As(err, &parseErr) {
					parseErr.Field = fmt.Sprintf("Stmt[%d]/Ntry[%d]/%s", s, n, parseErr.Field)
				}
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func extractEntry(account string, ntry *models.LedgerEntry) (models.Entry, error) {
	date := ntry.BookgDt.Value()
	if date == "" {
		return models.Entry{}, &pipelineerror.ParseError{Parser: parserName, Field: "BookgDt/Dt", Err: errMissing}
	}

	amount := strings.TrimSpace(ntry.Amt.Value)
	if amount == "" {
		return models.Entry{}, &pipelineerror.ParseError{Parser: parserName, Field: "Amt", Err: errMissing}
	}
	if _, err := decimal.NewFromString(amount); err != nil {
		return models.Entry{}, &pipelineerror.ParseError{Parser: parserName, Field: "Amt", Value: amount, Err: err}
	}

	entry := models.Entry{
		Account: account,
		Date:    date,
	}

	switch ntry.CdtDbtInd {
	case models.Debit:
		entry.Outflow = models.StringPtr(amount)
	case models.Credit:
		entry.Inflow = models.StringPtr(amount)
	case "":
		return models.Entry{}, &pipelineerror.ParseError{Parser: parserName, Field: "CdtDbtInd", Err: errMissing}
	default:
		return models.Entry{}, &pipelineerror.ParseError{
			Parser: parserName,
			Field:  "CdtDbtInd",
			Value:  string(ntry.CdtDbtInd),
			Err:    errors.New("indicator must be DBIT or CRDT"),
		}
	}

	entry.Payee, entry.Memo, entry.Remittance = recoverPayeeAndMemo(ntry)
	return entry, nil
}

// recoverPayeeAndMemo picks the payee from the creditor, then the debtor, and the
// memo from the additional entry information, then the first remittance line.
// Memo text shaped like "Payee > Memo" overrides both. The returned remittance is
// the memo source before splitting, with whitespace compacted.
func recoverPayeeAndMemo(ntry *models.LedgerEntry) (payee, memo *string, remittance string) {
	payee = ntry.CreditorName()
	if payee == nil {
		payee = ntry.DebtorName()
	}

	source := ntry.AdditionalInfo()
	if source == nil {
		source = ntry.FirstRemittanceLine()
	}
	if source == nil {
		return payee, nil, ""
	}

	text := *source
	remittance = NormalizeMemo(text)

	if left, right, found := strings.Cut(text, payeeMemoSeparator); found {
		payee = models.StringPtr(strings.TrimSpace(left))
		text = right
	}

	if normalized := NormalizeMemo(text); normalized != "" {
		memo = &normalized
	}
	return payee, memo, remittance
}

// NormalizeMemo collapses newlines and runs of whitespace into single spaces and
// trims the result. NormalizeMemo(NormalizeMemo(s)) == NormalizeMemo(s).
func NormalizeMemo(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
