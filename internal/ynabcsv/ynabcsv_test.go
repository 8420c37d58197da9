package ynabcsv

import (
	"encoding/csv"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"fjacquet/camt-ynab/internal/logging"
	"fjacquet/camt-ynab/internal/models"
	"fjacquet/camt-ynab/internal/pipelineerror"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Empty(t *testing.T) {
	s := NewSerializer(',', logging.NewMockLogger())

	out, err := s.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", out)
}

func TestSerialize_SingleEntry(t *testing.T) {
	s := NewSerializer(',', logging.NewMockLogger())

	out, err := s.Serialize([]models.Entry{{
		Account: "Checking",
		Date:    "2023-04-28",
		Payee:   models.StringPtr("BEN NEDERLAND"),
		Memo:    models.StringPtr("Klant 1.50884684 Factuur 908053695899"),
		Inflow:  models.StringPtr("10"),
	}})
	require.NoError(t, err)
	assert.Equal(t, Header+"\n2023-04-28,BEN NEDERLAND,Klant 1.50884684 Factuur 908053695899,,10\n", out)
}

func TestSerialize_AbsentFieldsAreEmptyCells(t *testing.T) {
	s := NewSerializer(',', logging.NewMockLogger())

	out, err := s.Serialize([]models.Entry{{Date: "2023-01-01", Outflow: models.StringPtr("3.50")}})
	require.NoError(t, err)
	assert.Equal(t, Header+"\n2023-01-01,,,3.50,\n", out)
}

func TestSerialize_Quoting(t *testing.T) {
	s := NewSerializer(',', logging.NewMockLogger())

	out, err := s.Serialize([]models.Entry{{
		Date:    "2023-01-01",
		Payee:   models.StringPtr(`Smith, "Bob"`),
		Memo:    models.StringPtr("a,b"),
		Outflow: models.StringPtr("1"),
	}})
	require.NoError(t, err)
	assert.Equal(t, Header+"\n2023-01-01,\"Smith, \"\"Bob\"\"\",\"a,b\",1,\n", out)
}

func TestSerialize_RoundTrip(t *testing.T) {
	entries := []models.Entry{
		{Date: "2023-04-28", Payee: models.StringPtr("BEN NEDERLAND"), Memo: models.StringPtr("Factuur 1"), Inflow: models.StringPtr("10")},
		{Date: "2023-04-29", Payee: models.StringPtr("Comma, Inc"), Memo: models.StringPtr(`say "hi"`), Outflow: models.StringPtr("4.95")},
		{Date: "2023-04-30", Payee: models.StringPtr("Ünïcødé café"), Outflow: models.StringPtr("0.01")},
		{Date: "2023-05-01", Memo: models.StringPtr("multi\nline"), Inflow: models.StringPtr("100.00")},
		{Date: "2023-05-01", Payee: models.StringPtr("Duplicate"), Outflow: models.StringPtr("1")},
		{Date: "2023-05-01", Payee: models.StringPtr("Duplicate"), Outflow: models.StringPtr("1")},
	}

	s := NewSerializer(',', logging.NewMockLogger())
	out, err := s.Serialize(entries)
	require.NoError(t, err)

	var rows []Row
	require.NoError(t, gocsv.UnmarshalString(out, &rows))
	require.Len(t, rows, len(entries))
	for i, e := range entries {
		assert.Equal(t, NewRow(e), rows[i])
	}
}

func TestSerialize_Delimiter(t *testing.T) {
	s := NewSerializer(';', logging.NewMockLogger())
	assert.Equal(t, ';', s.Delimiter())

	out, err := s.Serialize([]models.Entry{{
		Date:    "2023-01-01",
		Payee:   models.StringPtr("A;B"),
		Outflow: models.StringPtr("1,50"),
	}})
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Payee", "Memo", "Outflow", "Inflow"},
		{"2023-01-01", "A;B", "", "1,50", ""},
	}, records)
}

func TestSerialize_InvalidUTF8(t *testing.T) {
	logger := logging.NewMockLogger()
	s := NewSerializer(',', logger)

	out, err := s.Serialize([]models.Entry{
		{Date: "2023-01-01", Payee: models.StringPtr("fine")},
		{Date: "2023-01-02", Memo: models.StringPtr("bad \xff byte")},
	})
	assert.Empty(t, out)

	var serErr *pipelineerror.SerializationError
	require.True(t, errors.As(err, &serErr))
	assert.Equal(t, 1, serErr.Row)
	assert.Equal(t, "Memo", serErr.Field)
	assert.True(t, logger.HasEntry("ERROR", "Failed to serialize entries"))
}

func TestNewSerializer_DefaultDelimiter(t *testing.T) {
	assert.Equal(t, ',', NewSerializer(0, logging.NewMockLogger()).Delimiter())
}

func TestNewRow_LineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "line feed", in: "a\nb", want: "a\nb"},
		{name: "crlf", in: "a\r\nb", want: "a\nb"},
		{name: "carriage returns before line feed", in: "a\r\r\nb", want: "a\nb"},
		{name: "lone carriage return", in: "a\rb", want: "a\rb"},
		{name: "trailing carriage return", in: "a\r", want: "a\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow(models.Entry{Date: tt.in, Payee: models.StringPtr(tt.in), Memo: models.StringPtr(tt.in)})
			assert.Equal(t, tt.want, row.Date)
			assert.Equal(t, tt.want, row.Payee)
			assert.Equal(t, tt.want, row.Memo)
		})
	}
}

func TestSerialize_GeneratedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(20230428, 908053695899))
	delimiters := []rune{',', ';', '\t', '|'}

	for iteration := 0; iteration < 300; iteration++ {
		delimiter := delimiters[rng.IntN(len(delimiters))]
		pieces := []string{"", "a", "Zé", " ", "x y", "10.50", string(delimiter), `"`, "\n", "\r", "\r\n", `\.`}

		value := func() string {
			var b strings.Builder
			for n := rng.IntN(6); n > 0; n-- {
				b.WriteString(pieces[rng.IntN(len(pieces))])
			}
			return b.String()
		}
		optional := func() *string {
			if rng.IntN(4) == 0 {
				return nil
			}
			return models.StringPtr(value())
		}

		entries := make([]models.Entry, rng.IntN(6))
		for i := range entries {
			entries[i] = models.Entry{
				Date:    value(),
				Payee:   optional(),
				Memo:    optional(),
				Outflow: optional(),
				Inflow:  optional(),
			}
		}

		out, err := NewSerializer(delimiter, logging.NewMockLogger()).Serialize(entries)
		require.NoError(t, err)

		r := csv.NewReader(strings.NewReader(out))
		r.Comma = delimiter
		r.FieldsPerRecord = 5
		records, err := r.ReadAll()
		require.NoError(t, err, "delimiter %q output %q", delimiter, out)
		require.Len(t, records, len(entries)+1)
		assert.Equal(t, []string{"Date", "Payee", "Memo", "Outflow", "Inflow"}, records[0])

		for i, e := range entries {
			row := NewRow(e)
			assert.Equal(t, []string{row.Date, row.Payee, row.Memo, row.Outflow, row.Inflow}, records[i+1],
				"delimiter %q entry %d", delimiter, i)
			if !strings.Contains(models.Deref(e.Payee), "\r\n") {
				assert.Equal(t, models.Deref(e.Payee), records[i+1][1])
			}
		}
	}
}
