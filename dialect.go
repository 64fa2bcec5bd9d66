package csvqsniffer

import "fmt"

// Terminator identifies the line-ending sequence a dialect was detected under.
type Terminator int

const (
	// LF is a bare '\n'.
	LF Terminator = iota
	// CRLF is '\r\n'.
	CRLF
	// CR is a bare '\r'.
	CR
)

// String renders the terminator the way the CLI and JSON output expect it.
func (t Terminator) String() string {
	switch t {
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "LF"
	}
}

// QuoteStyle records whether quoting was necessary, always applied, or absent
// in the winning parse. Always is part of the closed enum for forward
// compatibility with a writer that forces quoting, but Sniff never emits it.
type QuoteStyle int

const (
	// QuoteNecessary means at least one field required quoting to be parsed correctly.
	QuoteNecessary QuoteStyle = iota
	// QuoteAlways is never produced by Sniff; reserved for a hypothetical writer.
	QuoteAlways
	// QuoteNever means no field in the winning parse needed quoting.
	QuoteNever
)

func (q QuoteStyle) String() string {
	switch q {
	case QuoteAlways:
		return "Always"
	case QuoteNever:
		return "Never"
	default:
		return "Necessary"
	}
}

// DataType is the closed tag set a cell's bytes classify into.
type DataType int

const (
	Text DataType = iota
	Empty
	Integer
	Float
	Boolean
	Date
	Time
	DateTime
	Email
	Url
	Phone
	Currency
	Percentage
)

func (d DataType) String() string {
	switch d {
	case Empty:
		return "Empty"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case Email:
		return "Email"
	case Url:
		return "Url"
	case Phone:
		return "Phone"
	case Currency:
		return "Currency"
	case Percentage:
		return "Percentage"
	default:
		return "Text"
	}
}

// typeWeight is the fixed weight table from spec section 4.4. Empty never
// contributes to a column's score, so it is absent from the map on purpose.
var typeWeight = map[DataType]float64{
	Integer:    3.0,
	Float:      3.0,
	Date:       3.0,
	Time:       3.0,
	DateTime:   3.0,
	Currency:   3.0,
	Percentage: 3.0,
	Boolean:    3.0,
	Email:      2.0,
	Url:        2.0,
	Phone:      2.0,
	Text:       1.0,
}

// Dialect fully configures a CSV parser for one file: which byte separates
// fields, which byte (if any) quotes them, which byte (if any) escapes inside
// a quoted field, how lines end, whether quoting was necessary, and whether
// row 0 is a header.
type Dialect struct {
	Delimiter  byte
	QuoteChar  *byte
	Escape     *byte
	HasHeaders bool
	Terminator Terminator
	Quoting    QuoteStyle
}

// byteOf is a small helper for building *byte literals in tests and callers.
func byteOf(b byte) *byte {
	return &b
}

// String renders a Dialect for debug logging, not for machine consumption.
func (d Dialect) String() string {
	quote := "None"
	if d.QuoteChar != nil {
		quote = string(*d.QuoteChar)
	}
	escape := "None"
	if d.Escape != nil {
		escape = string(*d.Escape)
	}
	return fmt.Sprintf("Dialect{delim:%q quote:%s escape:%s headers:%t term:%s quoting:%s}",
		string(d.Delimiter), quote, escape, d.HasHeaders, d.Terminator, d.Quoting)
}

// ErrorKind classifies the ways Sniff can fail, per the error taxonomy in
// spec section 7.
type ErrorKind int

const (
	// KindInvalidInput means the sample was too small or empty.
	KindInvalidInput ErrorKind = iota
	// KindNoValidDialect means every candidate scored zero or under min_rows.
	KindNoValidDialect
	// KindIoError means the reader failed before the sample cap was reached.
	KindIoError
	// KindCsvError is reserved for unrecoverable parser states; the tolerant
	// parser never produces it in normal operation.
	KindCsvError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoValidDialect:
		return "NoValidDialect"
	case KindIoError:
		return "IoError"
	case KindCsvError:
		return "CsvError"
	default:
		return "InvalidInput"
	}
}

// SniffError is the error type returned by Sniff and SniffFromString. It
// wraps an optional underlying cause so callers can errors.Is/errors.As
// through to it (e.g. an io.Reader failure).
type SniffError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *SniffError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("csvqsniffer: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("csvqsniffer: %s: %s", e.Kind, e.Msg)
}

func (e *SniffError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalidInputErr(msg string) *SniffError {
	return &SniffError{Kind: KindInvalidInput, Msg: msg}
}

func noValidDialectErr(msg string) *SniffError {
	return &SniffError{Kind: KindNoValidDialect, Msg: msg}
}

func ioErr(err error) *SniffError {
	return &SniffError{Kind: KindIoError, Msg: "reader failed before sample cap was reached", Err: err}
}
