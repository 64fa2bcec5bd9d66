package csvqsniffer

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

// reemitter re-serializes records under a Dialect. It exists only to drive
// the idempotence property from spec section 8 (re-emit under a detected
// Dialect, re-sniff, get the same Dialect back) from tests; the package
// itself does not transform, validate, or re-emit CSV data, so this type is
// test-only rather than part of the public API.
type reemitter struct {
	dst *bufio.Writer
	d   Dialect
	err error
}

func newReemitter(w io.Writer, d Dialect) *reemitter {
	return &reemitter{dst: bufio.NewWriterSize(w, 1<<10), d: d}
}

func (em *reemitter) writeRecord(record []string) error {
	if em.err != nil {
		return em.err
	}
	for i, field := range record {
		if i > 0 {
			if err := em.dst.WriteByte(em.d.Delimiter); err != nil {
				em.err = err
				return err
			}
		}
		if err := em.writeField(field); err != nil {
			em.err = err
			return err
		}
	}
	if err := em.writeTerminator(); err != nil {
		em.err = err
		return err
	}
	return nil
}

func (em *reemitter) writeAll(records [][]string) error {
	for _, record := range records {
		if err := em.writeRecord(record); err != nil {
			return err
		}
	}
	return em.dst.Flush()
}

func (em *reemitter) writeTerminator() error {
	var seq []byte
	switch em.d.Terminator {
	case CRLF:
		seq = []byte{'\r', '\n'}
	case CR:
		seq = []byte{'\r'}
	default:
		seq = []byte{'\n'}
	}
	_, err := em.dst.Write(seq)
	return err
}

func (em *reemitter) writeField(field string) error {
	if em.d.QuoteChar == nil {
		_, err := em.dst.WriteString(field)
		return err
	}
	quote := *em.d.QuoteChar
	needsQuote := em.d.Quoting == QuoteAlways || fieldNeedsQuote(field, em.d.Delimiter, quote, em.d.Escape)
	if !needsQuote {
		_, err := em.dst.WriteString(field)
		return err
	}

	if err := em.dst.WriteByte(quote); err != nil {
		return err
	}
	if err := em.writeQuotedBody(field, quote); err != nil {
		return err
	}
	return em.dst.WriteByte(quote)
}

// writeQuotedBody writes field's bytes between the opening and closing quote
// already written by the caller. When the dialect carries a distinct escape
// byte, an escaped byte becomes escape+byte, matching how parseTolerant reads
// it back; otherwise a literal quote byte is doubled, the fallback the
// parser also understands when no escape byte is set.
func (em *reemitter) writeQuotedBody(field string, quote byte) error {
	escape := em.d.Escape
	useEscape := escape != nil && *escape != quote

	start := 0
	for i := 0; i < len(field); i++ {
		b := field[i]
		if b != quote && !(useEscape && b == *escape) {
			continue
		}
		if start < i {
			if _, err := em.dst.WriteString(field[start:i]); err != nil {
				return err
			}
		}
		if useEscape {
			if _, err := em.dst.Write([]byte{*escape, b}); err != nil {
				return err
			}
		} else if _, err := em.dst.Write([]byte{quote, quote}); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(field) {
		if _, err := em.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return nil
}

// fieldNeedsQuote reports whether field contains a byte that would otherwise
// be misread on the next parse: the delimiter, a raw newline, the quote
// byte, or (when set) the escape byte.
func fieldNeedsQuote(field string, delimiter, quote byte, escape *byte) bool {
	for i := 0; i < len(field); i++ {
		b := field[i]
		switch b {
		case quote, delimiter, '\n', '\r':
			return true
		}
		if escape != nil && b == *escape {
			return true
		}
	}
	return false
}

func TestReemitterWriteRecordCommaQuoted(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', QuoteChar: byteOf('"'), Terminator: LF}
	em := newReemitter(&buf, d)

	if err := em.writeRecord([]string{"a", "b,b", "c\"d"}); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	if err := em.dst.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := "a,\"b,b\",\"c\"\"d\"\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestReemitterNeverQuotesWhenNoQuoteChar(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', QuoteChar: nil, Terminator: LF}
	em := newReemitter(&buf, d)

	if err := em.writeRecord([]string{"a,b", "c"}); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	_ = em.dst.Flush()

	want := "a,b,c\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestReemitterCRLFTerminator(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', Terminator: CRLF}
	em := newReemitter(&buf, d)
	_ = em.writeRecord([]string{"a", "b"})
	_ = em.dst.Flush()

	if buf.String() != "a,b\r\n" {
		t.Fatalf("got %q, want CRLF terminated", buf.String())
	}
}

func TestReemitterUsesEscapeByteInsteadOfDoublingQuote(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', QuoteChar: byteOf('"'), Escape: byteOf('\\'), Terminator: LF}
	em := newReemitter(&buf, d)

	if err := em.writeRecord([]string{"a", `b"c`, "d"}); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	if err := em.dst.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := `a,"b\"c",d` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestReemitterEscapesLiteralEscapeByteWhenEscapeSet(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', QuoteChar: byteOf('"'), Escape: byteOf('\\'), Terminator: LF}
	em := newReemitter(&buf, d)

	if err := em.writeRecord([]string{`a\b`, "c"}); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	_ = em.dst.Flush()

	want := `"a\\b",c` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestReemitterEscapeRoundTripsThroughParseTolerant(t *testing.T) {
	t.Parallel()
	quote := byteOf('"')
	escape := byteOf('\\')
	d := Dialect{Delimiter: ',', QuoteChar: quote, Escape: escape, Terminator: LF}

	var buf strings.Builder
	em := newReemitter(&buf, d)
	records := [][]string{{"a", `has "quote" and \backslash`, "c"}}
	if err := em.writeAll(records); err != nil {
		t.Fatalf("writeAll: %v", err)
	}

	table := parseTolerant([]byte(buf.String()), candidate{delimiter: d.Delimiter, quote: quote, escape: escape}, defaultMaxRows)
	got := rowsToStrings(table)
	want := [][]string{{"a", `has "quote" and \backslash`, "c"}}
	if len(got) != 1 || len(got[0]) != 3 || got[0][1] != want[0][1] {
		t.Fatalf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestReemitterWriteAllSucceedsOnHealthyWriter(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	d := Dialect{Delimiter: ',', Terminator: LF}
	em := newReemitter(&buf, d)
	if err := em.writeAll([][]string{{"a", "b"}, {"c", "d"}}); err != nil {
		t.Fatalf("writeAll: %v", err)
	}
	if em.err != nil {
		t.Fatalf("unexpected error: %v", em.err)
	}
}
