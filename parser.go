package csvqsniffer

// Row is one ordered sequence of cells. Each cell is built byte by byte from
// the sample that produced it, so it is a copy and does not alias the sample.
type Row [][]byte

// Table is a finite ordered sequence of rows. Rows need not have equal
// length — short and long rows are retained because row-length variance is a
// scoring signal (spec section 3).
type Table struct {
	Rows       []Row
	Terminator Terminator
	// AnyQuoted records whether any field in the parse required quoting
	// (contained the delimiter, quote, or a terminator byte), used by the
	// driver to set Dialect.Quoting.
	AnyQuoted bool
}

// candidate is the (delimiter, quote?, escape?) triple under evaluation.
type candidate struct {
	delimiter byte
	quote     *byte
	escape    *byte
}

func (c candidate) hasQuote() bool {
	return c.quote != nil
}

func (c candidate) hasEscape() bool {
	return c.escape != nil
}

// parseTolerant tokenizes sample under cand into a Table. It never returns an
// error: malformed input under a wrong candidate produces a lopsided table
// that the scorer then punishes. Parsing stops once maxRows terminators have
// been observed, even mid-field of the following row (spec section 4.2).
func parseTolerant(sample []byte, cand candidate, maxRows int) *Table {
	t := &Table{Terminator: LF}
	firstTerminatorSeen := false

	var row Row
	var field []byte
	inQuotes := false
	rowsSeen := 0
	sawAnyContent := false

	flushField := func() {
		row = append(row, field)
		field = nil
	}
	flushRow := func() {
		flushField()
		t.Rows = append(t.Rows, row)
		row = nil
		rowsSeen++
	}

	i := 0
	n := len(sample)
	for i < n {
		if rowsSeen >= maxRows {
			break
		}
		b := sample[i]

		if inQuotes {
			if cand.hasEscape() && b == *cand.escape && i+1 < n {
				field = append(field, sample[i+1])
				i += 2
				continue
			}
			if cand.hasQuote() && b == *cand.quote {
				if i+1 < n && sample[i+1] == *cand.quote {
					field = append(field, *cand.quote)
					i += 2
					continue
				}
				inQuotes = false
				i++
				continue
			}
			field = append(field, b)
			i++
			continue
		}

		if cand.hasQuote() && b == *cand.quote && len(field) == 0 {
			inQuotes = true
			sawAnyContent = true
			i++
			continue
		}

		switch {
		case b == cand.delimiter:
			flushField()
			sawAnyContent = true
			i++
		case b == '\r':
			if !firstTerminatorSeen {
				if i+1 < n && sample[i+1] == '\n' {
					t.Terminator = CRLF
				} else {
					t.Terminator = CR
				}
				firstTerminatorSeen = true
			}
			flushRow()
			sawAnyContent = false
			i++
			if i < n && sample[i] == '\n' {
				i++
			}
		case b == '\n':
			if !firstTerminatorSeen {
				t.Terminator = LF
				firstTerminatorSeen = true
			}
			flushRow()
			sawAnyContent = false
			i++
		default:
			field = append(field, b)
			sawAnyContent = true
			i++
		}
	}

	// Unterminated quoted fields at end-of-input are closed silently, and a
	// trailing line without a terminator still becomes a row unless it is
	// entirely empty (spec section 4.2: empty trailing lines are discarded).
	if sawAnyContent || len(field) > 0 || len(row) > 0 {
		flushRow()
	}

	trimTrailingEmptyLines(t)

	t.AnyQuoted = anyFieldNeededQuoting(t, cand)
	return t
}

// trimTrailingEmptyLines drops empty trailing lines from the end of the
// table (spec section 4.2). A line is "empty" when it produced a single
// zero-length field; interior empty lines are kept as one-field rows.
func trimTrailingEmptyLines(t *Table) {
	for len(t.Rows) > 0 {
		last := t.Rows[len(t.Rows)-1]
		if len(last) == 1 && len(last[0]) == 0 {
			t.Rows = t.Rows[:len(t.Rows)-1]
			continue
		}
		break
	}
}

// anyFieldNeededQuoting reports whether any parsed field contains a byte
// that would force re-quoting if the table were re-emitted under cand: the
// delimiter, the quote byte, or a terminator byte. Such content could only
// have reached the field by being inside a quoted region of the source.
func anyFieldNeededQuoting(t *Table, cand candidate) bool {
	for _, row := range t.Rows {
		for _, field := range row {
			for _, b := range field {
				if b == cand.delimiter || b == '\n' || b == '\r' {
					return true
				}
				if cand.hasQuote() && b == *cand.quote {
					return true
				}
			}
		}
	}
	return false
}

// maxRowLen returns the widest row in the table.
func maxRowLen(t *Table) int {
	max := 0
	for _, r := range t.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}
