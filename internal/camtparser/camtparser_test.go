package camtparser

import (
	"errors"
	"strings"
	"testing"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/pipelineerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <BkToCstmrStmt>
    <GrpHdr><MsgId>MSG-1</MsgId></GrpHdr>
    <Stmt>
      <Id>STMT-1</Id>
      <Acct>
        <Id><IBAN>NL00BANK0000000000</IBAN></Id>
        <Ccy>EUR</Ccy>
      </Acct>
      <Ntry>
        <Amt Ccy="EUR">10</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2023-04-28</Dt></BookgDt>
        <NtryDtls>
          <TxDtls>
            <RmtInf><Ustrd>Klant 1.50884684 Factuur 908053695899</Ustrd></RmtInf>
            <RltdPties><Cdtr><Nm>BEN NEDERLAND</Nm></Cdtr></RltdPties>
          </TxDtls>
        </NtryDtls>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">4.95</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2023-04-29</Dt></BookgDt>
        <AddtlNtryInf>ALDI 1234 &gt; Boodschappen
          week 17</AddtlNtryInf>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

const sampleStatementV08 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08">
  <BkToCstmrStmt>
    <Stmt>
      <Acct><Id><Othr><Id>0123456789</Id></Othr></Id></Acct>
      <Ntry>
        <Amt Ccy="CHF">250.00</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><DtTm>2024-01-05T10:00:00</DtTm></BookgDt>
        <NtryDtls>
          <TxDtls>
            <RltdPties>
              <Dbtr><Pty><Nm>Me</Nm></Pty></Dbtr>
              <Cdtr><Pty><Nm>Landlord AG</Nm></Pty></Cdtr>
            </RltdPties>
          </TxDtls>
        </NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestParser_Parse(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	entries, err := p.Parse(strings.NewReader(sampleStatement))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "NL00BANK0000000000", entries[0].Account)
	assert.Equal(t, "2023-04-28", entries[0].Date)
	assert.Equal(t, "BEN NEDERLAND", models.Deref(entries[0].Payee))
	assert.Equal(t, "Klant 1.50884684 Factuur 908053695899", models.Deref(entries[0].Memo))
	assert.Equal(t, "10", models.Deref(entries[0].Inflow))
	assert.Nil(t, entries[0].Outflow)

	assert.Equal(t, "ALDI 1234", models.Deref(entries[1].Payee))
	assert.Equal(t, "Boodschappen week 17", models.Deref(entries[1].Memo))
	assert.Equal(t, "4.95", models.Deref(entries[1].Outflow))
	assert.Nil(t, entries[1].Inflow)
}

func TestParser_ParseV08Shape(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	entries, err := p.ParseBytes([]byte(sampleStatementV08))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "0123456789", entries[0].Account)
	assert.Equal(t, "2024-01-05T10:00:00", entries[0].Date)
	assert.Equal(t, "Landlord AG", models.Deref(entries[0].Payee))
	assert.Equal(t, "250.00", models.Deref(entries[0].Outflow))
	assert.Nil(t, entries[0].Memo)
}

const accountReport = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.052.001.02">
  <BkToCstmrAcctRpt>
    <Rpt>
      <Acct><Id><IBAN>NL00BANK0000000000</IBAN></Id></Acct>
      <Ntry>
        <Amt Ccy="EUR">10</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2023-04-28</Dt></BookgDt>
      </Ntry>
    </Rpt>
  </BkToCstmrAcctRpt>
</Document>`

func TestParser_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "not xml", input: "this is not xml"},
		{name: "truncated", input: `<Document><BkToCstmrStmt><Stmt>`},
		{name: "wrong root", input: `<Invoice><Total>1</Total></Invoice>`},
		{name: "no statement message", input: `<Document><Foo/></Document>`},
		{name: "camt.052 account report", input: accountReport},
		{name: "unknown indicator", input: strings.Replace(sampleStatement, "CRDT", "BOTH", 1)},
		{name: "missing iban", input: strings.Replace(sampleStatement,
			"<IBAN>NL00BANK0000000000</IBAN>", "", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(logging.NewMockLogger())
			entries, err := p.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, entries)

			var parseErr *pipelineerror.ParseError
			assert.True(t, errors.As(err, &parseErr), "got %T", err)
		})
	}
}

func TestParser_ParseIsRepeatable(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	first, err := p.ParseBytes([]byte(sampleStatement))
	require.NoError(t, err)
	second, err := p.ParseBytes([]byte(sampleStatement))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParser_WithStubDecoder(t *testing.T) {
	entry := withParties(ledgerEntry(models.Credit, "10"),
		models.StringPtr("BEN NEDERLAND"), nil, "Klant 1.50884684 Factuur 908053695899")
	stub := NewStubDecoder(*document("NL00BANK0000000000", entry))

	p := NewParserWithDecoder(stub, logging.NewMockLogger())
	entries, err := p.ParseBytes(nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "BEN NEDERLAND", models.Deref(entries[0].Payee))
}

func TestParser_StubDecoderError(t *testing.T) {
	logger := logging.NewMockLogger()
	p := NewParserWithDecoder(&StubDecoder{Err: errors.New("boom")}, logger)

	entries, err := p.ParseBytes([]byte("<ignored/>"))
	assert.Nil(t, entries)

	var parseErr *pipelineerror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.EqualError(t, parseErr.Err, "boom")
	assert.True(t, logger.HasEntry("ERROR", "Failed to decode CAMT.053 document"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParser_ReaderFailure(t *testing.T) {
	p := NewParser(logging.NewMockLogger())

	_, err := p.Parse(failingReader{})
	var ioErr *pipelineerror.InputIOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestParser_ValidateFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "v02 statement", input: sampleStatement, want: true},
		{name: "v08 statement", input: sampleStatementV08, want: true},
		{name: "not xml", input: "Date,Payee\n", want: false},
		{name: "other xml", input: `<root><element>value</element></root>`, want: false},
		{name: "statement without account", input: `<Document><BkToCstmrStmt><Stmt><Id>1</Id></Stmt></BkToCstmrStmt></Document>`, want: false},
	}

	p := NewParser(logging.NewMockLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := p.ValidateFormat(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
