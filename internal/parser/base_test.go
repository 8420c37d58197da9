package parser

import (
	"testing"

	"fjacquet/camt-ynab/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mock := logging.NewMockLogger()
		base := NewBaseParser(mock)
		assert.Same(t, mock, base.GetLogger())
	})

	t.Run("nil logger gets a default", func(t *testing.T) {
		base := NewBaseParser(nil)
		assert.NotNil(t, base.GetLogger())
	})
}
