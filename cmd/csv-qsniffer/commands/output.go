package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oleg578/csvqsniffer"
)

// OutputFormat selects how a detected Dialect is rendered.
type OutputFormat string

const (
	FormatHuman OutputFormat = "human"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

// ParseOutputFormat validates the -f/--format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatHuman, FormatJSON, FormatCSV:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of human, json, csv", s)
	}
}

// Render writes the dialect to w in the requested format, matching spec
// section 6's exact line shapes.
func Render(w io.Writer, d csvqsniffer.Dialect, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, d)
	case FormatCSV:
		return renderCSV(w, d)
	default:
		return renderHuman(w, d, verbose)
	}
}

func renderHuman(w io.Writer, d csvqsniffer.Dialect, verbose bool) error {
	delimiterDisplay := delimiterHumanForm(d.Delimiter)
	if _, err := fmt.Fprintf(w, "Delimiter: %s\n", delimiterDisplay); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Quote character: %s\n", optionalByteDisplay(d.QuoteChar)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Escape character: %s\n", optionalByteDisplay(d.Escape)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Has headers: %t\n", d.HasHeaders); err != nil {
		return err
	}
	if verbose {
		if _, err := fmt.Fprintf(w, "Line terminator: %s\n", d.Terminator); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Quoting style: %s\n", d.Quoting); err != nil {
			return err
		}
	}
	return nil
}

func delimiterHumanForm(b byte) string {
	switch b {
	case '\t':
		return "'\\t' (9)"
	case ' ':
		return "'\\s' (32)"
	default:
		return fmt.Sprintf("'%c' (%d)", b, b)
	}
}

func optionalByteDisplay(b *byte) string {
	if b == nil {
		return "None"
	}
	return fmt.Sprintf("'%c'", *b)
}

type jsonDialect struct {
	Delimiter     string `json:"delimiter"`
	DelimiterByte byte   `json:"delimiter_byte"`
	QuoteChar     *string `json:"quote_char"`
	QuoteCharByte *byte   `json:"quote_char_byte"`
	Escape        *string `json:"escape"`
	EscapeByte    *byte   `json:"escape_byte"`
	HasHeaders    bool    `json:"has_headers"`
	Terminator    string  `json:"terminator"`
	Quoting       string  `json:"quoting"`
}

func renderJSON(w io.Writer, d csvqsniffer.Dialect) error {
	out := jsonDialect{
		Delimiter:     string(d.Delimiter),
		DelimiterByte: d.Delimiter,
		HasHeaders:    d.HasHeaders,
		Terminator:    d.Terminator.String(),
		Quoting:       d.Quoting.String(),
	}
	if d.QuoteChar != nil {
		s := string(*d.QuoteChar)
		out.QuoteChar = &s
		out.QuoteCharByte = d.QuoteChar
	}
	if d.Escape != nil {
		s := string(*d.Escape)
		out.Escape = &s
		out.EscapeByte = d.Escape
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, d csvqsniffer.Dialect) error {
	quote := ""
	if d.QuoteChar != nil {
		quote = string(*d.QuoteChar)
	}
	escape := ""
	if d.Escape != nil {
		escape = string(*d.Escape)
	}
	_, err := fmt.Fprintf(w, "%c,%s,%t,%s\n", d.Delimiter, quote, d.HasHeaders, escape)
	return err
}
