// Package csvqsniffer detects the dialect of a CSV byte stream: which byte is
// the field delimiter, which byte (if any) quotes fields, which byte (if any)
// escapes inside a quoted field, and whether the first record is a header
// row.
//
// # Table Uniformity Method
//
// The detector enumerates candidate dialects, parses the sample under each
// one with a tolerant tokenizer that never aborts on malformed input, tags
// every cell with a DataType, and scores each candidate's resulting table by
// how uniform its columns are. The highest-scoring candidate wins.
//
// # Getting started
//
//	sniffer := csvqsniffer.NewSniffer()
//	dialect, err := sniffer.SniffFromString("name,age,city\nJohn,25,NYC\nJane,30,LA")
//
// # Scope
//
// This package does not transform, validate, or re-emit CSV data. It does
// not infer a schema beyond the per-column type tags used for scoring, and it
// does not guess character encoding — input is treated as opaque bytes.
package csvqsniffer
