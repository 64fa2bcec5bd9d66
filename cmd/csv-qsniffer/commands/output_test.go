package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/csvqsniffer"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"human", "json", "csv"}
	for _, v := range valid {
		f, err := ParseOutputFormat(v)
		require.NoError(t, err)
		assert.Equal(t, OutputFormat(v), f)
	}

	_, err := ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestRenderHuman(t *testing.T) {
	t.Parallel()
	d := csvqsniffer.Dialect{
		Delimiter:  ',',
		QuoteChar:  quotePtr('"'),
		HasHeaders: true,
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, FormatHuman, false))

	out := buf.String()
	assert.Contains(t, out, "Delimiter: ',' (44)")
	assert.Contains(t, out, "Quote character: '\"'")
	assert.Contains(t, out, "Escape character: None")
	assert.Contains(t, out, "Has headers: true")
	assert.NotContains(t, out, "Line terminator")
}

func TestRenderHumanVerboseIncludesExtras(t *testing.T) {
	t.Parallel()
	d := csvqsniffer.Dialect{Delimiter: '\t'}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, FormatHuman, true))

	out := buf.String()
	assert.Contains(t, out, "'\\t' (9)")
	assert.Contains(t, out, "Line terminator:")
	assert.Contains(t, out, "Quoting style:")
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()
	d := csvqsniffer.Dialect{
		Delimiter:  ';',
		QuoteChar:  quotePtr('\''),
		HasHeaders: false,
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, FormatJSON, false))

	out := buf.String()
	assert.True(t, strings.Contains(out, `"delimiter": ";"`))
	assert.True(t, strings.Contains(out, `"has_headers": false`))
	assert.True(t, strings.Contains(out, `"quote_char": "'"`))
}

func TestRenderCSV(t *testing.T) {
	t.Parallel()
	d := csvqsniffer.Dialect{Delimiter: ',', HasHeaders: true}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, FormatCSV, false))
	assert.Equal(t, ",,,true,\n", buf.String())
}

func quotePtr(b byte) *byte { return &b }
