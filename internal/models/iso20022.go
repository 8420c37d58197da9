// Package models provides the data structures shared by the conversion stages:
// the subset of the CAMT.053 statement hierarchy that is deserialized, and the
// canonical Entry produced from it.
package models

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Document is the root of a CAMT.053 XML document. Element names are matched
// on their local name, so any camt.053.001.xx namespace is accepted.
type Document struct {
	XMLName xml.Name `xml:"Document"`
	// BkToCstmrStmt is nil when the document carries no statement message,
	// as in a camt.052 account report.
	BkToCstmrStmt *StatementMessage `xml:"BkToCstmrStmt"`
}

// StatementMessage groups the statement blocks of a document.
type StatementMessage struct {
	Stmt []Statement `xml:"Stmt"`
}

// Statements returns the statement blocks, or nil when there is no statement
// message.
func (d *Document) Statements() []Statement {
	if d == nil || d.BkToCstmrStmt == nil {
		return nil
	}
	return d.BkToCstmrStmt.Stmt
}

// Statement is one account statement block. A document may contain several.
type Statement struct {
	ID   string        `xml:"Id"`
	Acct Account       `xml:"Acct"`
	Ntry []LedgerEntry `xml:"Ntry"`
}

// Account identifies the account a statement block belongs to.
type Account struct {
	ID struct {
		IBAN string `xml:"IBAN"`
		Othr struct {
			ID string `xml:"Id"`
		} `xml:"Othr"`
	} `xml:"Id"`
	Ccy string `xml:"Ccy"`
}

// Identifier returns the IBAN, or the proprietary id when no IBAN is given.
func (a Account) Identifier() string {
	if iban := strings.TrimSpace(a.ID.IBAN); iban != "" {
		return iban
	}
	return strings.TrimSpace(a.ID.Othr.ID)
}

// Amount is a decimal amount kept as the literal text found in the document.
type Amount struct {
	Value string `xml:",chardata"`
	Ccy   string `xml:"Ccy,attr"`
}

// CreditDebitIndicator is the CdtDbtInd of an entry.
type CreditDebitIndicator string

const (
	Debit  CreditDebitIndicator = "DBIT"
	Credit CreditDebitIndicator = "CRDT"
)

// UnmarshalXML accepts only DBIT and CRDT; any other value fails the whole decode.
func (c *CreditDebitIndicator) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	switch value := CreditDebitIndicator(strings.TrimSpace(raw)); value {
	case Debit, Credit:
		*c = value
		return nil
	default:
		return fmt.Errorf("unknown credit/debit indicator %q", raw)
	}
}

// LedgerEntry is a raw Ntry element before extraction.
type LedgerEntry struct {
	Amt          Amount               `xml:"Amt"`
	CdtDbtInd    CreditDebitIndicator `xml:"CdtDbtInd"`
	BookgDt      EntryDate            `xml:"BookgDt"`
	NtryDtls     EntryDetails         `xml:"NtryDtls"`
	AddtlNtryInf *string              `xml:"AddtlNtryInf"`
}

// EntryDate holds a booking date, either as a date or as a date-time.
type EntryDate struct {
	Dt   string `xml:"Dt"`
	DtTm string `xml:"DtTm"`
}

// Value returns Dt, falling back to DtTm.
func (d EntryDate) Value() string {
	if dt := strings.TrimSpace(d.Dt); dt != "" {
		return dt
	}
	return strings.TrimSpace(d.DtTm)
}

// EntryDetails wraps the transaction details of an entry.
type EntryDetails struct {
	TxDtls []TransactionDetails `xml:"TxDtls"`
}

// TransactionDetails carries remittance text and related parties.
type TransactionDetails struct {
	RmtInf struct {
		Ustrd []string `xml:"Ustrd"`
	} `xml:"RmtInf"`
	RltdPties RelatedParties `xml:"RltdPties"`
}

// RelatedParties holds the creditor and debtor of a transaction.
type RelatedParties struct {
	Dbtr Party `xml:"Dbtr"`
	Cdtr Party `xml:"Cdtr"`
}

// Party is a related party. camt.053.001.02 puts the name directly under the
// party, later versions nest it under Pty.
type Party struct {
	Nm  *string `xml:"Nm"`
	Pty struct {
		Nm *string `xml:"Nm"`
	} `xml:"Pty"`
}

// Name returns the party name, or nil when none is present or it is blank.
func (p Party) Name() *string {
	for _, name := range []*string{p.Nm, p.Pty.Nm} {
		if name != nil && strings.TrimSpace(*name) != "" {
			trimmed := strings.TrimSpace(*name)
			return &trimmed
		}
	}
	return nil
}

// FirstTxDetails returns the first transaction details, or nil.
func (e *LedgerEntry) FirstTxDetails() *TransactionDetails {
	if len(e.NtryDtls.TxDtls) > 0 {
		return &e.NtryDtls.TxDtls[0]
	}
	return nil
}

// AdditionalInfo returns AddtlNtryInf, or nil when it is absent or blank.
func (e *LedgerEntry) AdditionalInfo() *string {
	if e.AddtlNtryInf == nil || strings.TrimSpace(*e.AddtlNtryInf) == "" {
		return nil
	}
	return e.AddtlNtryInf
}

// FirstRemittanceLine returns the first unstructured remittance line, or nil.
func (e *LedgerEntry) FirstRemittanceLine() *string {
	tx := e.FirstTxDetails()
	if tx == nil || len(tx.RmtInf.Ustrd) == 0 {
		return nil
	}
	return &tx.RmtInf.Ustrd[0]
}

// CreditorName returns the creditor's name from the first transaction details.
func (e *LedgerEntry) CreditorName() *string {
	if tx := e.FirstTxDetails(); tx != nil {
		return tx.RltdPties.Cdtr.Name()
	}
	return nil
}

// DebtorName returns the debtor's name from the first transaction details.
func (e *LedgerEntry) DebtorName() *string {
	if tx := e.FirstTxDetails(); tx != nil {
		return tx.RltdPties.Dbtr.Name()
	}
	return nil
}
