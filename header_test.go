package csvqsniffer

import "testing"

func TestDetectHeaderTextAboveNumericColumns(t *testing.T) {
	t.Parallel()
	table := parseTolerant([]byte("name,age,city\nJohn,25,NYC\nJane,30,LA\n"), candidate{delimiter: ','}, defaultMaxRows)
	cols := classifyColumns(table)
	if !detectHeader(table, cols) {
		t.Fatal("expected has_headers=true when row 0 is text over numeric columns")
	}
}

func TestDetectHeaderAllDataRowsNoHeader(t *testing.T) {
	t.Parallel()
	table := parseTolerant([]byte("John,25,NYC\nJane,30,LA\nBob,35,SF\n"), candidate{delimiter: ','}, defaultMaxRows)
	cols := classifyColumns(table)
	if detectHeader(table, cols) {
		t.Fatal("expected has_headers=false when every row looks like data")
	}
}

func TestDetectHeaderRequiresAtLeastTwoRows(t *testing.T) {
	t.Parallel()
	table := parseTolerant([]byte("name,age\n"), candidate{delimiter: ','}, defaultMaxRows)
	cols := classifyColumns(table)
	if detectHeader(table, cols) {
		t.Fatal("expected has_headers=false with fewer than two rows")
	}
}

func TestColumnVotesHeaderFalseWhenRestOfColumnIsAbsent(t *testing.T) {
	t.Parallel()
	// Column 2 only exists in row 0; every data row is short one field, so
	// restColumnCounts(t, 2) is empty. dominantType must fall back to Text
	// for an empty histogram, not Integer (typeWeightOrder's first entry),
	// or a text row-0 cell over an absent rest-of-column would falsely vote
	// header-like.
	table := parseTolerant([]byte("name,age,extra\nJohn,25\nJane,30\n"), candidate{delimiter: ','}, defaultMaxRows)
	cols := classifyColumns(table)
	if columnVotesHeader(table, cols[2], 2) {
		t.Fatal("expected no header vote for a column with no data rows beneath it")
	}
}
