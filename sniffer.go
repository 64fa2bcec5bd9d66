package csvqsniffer

import (
	"bytes"
	"io"
)

const (
	defaultMaxRows = 1000
	defaultMinRows = 2

	minSampleCap = 64 * 1024
	maxSampleCap = 4 * 1024 * 1024
	assumedMeanLineLen = 64
)

// Sniffer detects the dialect of a CSV byte stream. A field left at zero (or
// negative) falls back to its documented default, so a zero-value Sniffer
// behaves like one built by NewSniffer.
type Sniffer struct {
	// MaxRows caps how many rows are analyzed per candidate. Default 1000.
	MaxRows int
	// MinRows is the minimum number of rows required for detection to
	// succeed. Default 2.
	MinRows int
}

// NewSniffer returns a Sniffer configured with the documented defaults.
func NewSniffer() *Sniffer {
	return &Sniffer{MaxRows: defaultMaxRows, MinRows: defaultMinRows}
}

func (s *Sniffer) maxRows() int {
	if s.MaxRows > 0 {
		return s.MaxRows
	}
	return defaultMaxRows
}

func (s *Sniffer) minRows() int {
	if s.MinRows > 0 {
		return s.MinRows
	}
	return defaultMinRows
}

// Sniff reads up to an internal byte cap from r and detects the dialect of
// the resulting sample. The cap is derived from MaxRows times an assumed
// mean line length, bounded to [64 KiB, 4 MiB]. Sniff blocks on r until the
// cap is reached or r returns io.EOF; it never times out on its own.
func (s *Sniffer) Sniff(r io.Reader) (Dialect, error) {
	capBytes := sampleCap(s.maxRows())
	buf := make([]byte, 0, capBytes)
	chunk := make([]byte, 32*1024)

	for len(buf) < capBytes {
		toRead := chunk
		if remaining := capBytes - len(buf); remaining < len(toRead) {
			toRead = chunk[:remaining]
		}
		n, err := r.Read(toRead)
		if n > 0 {
			buf = append(buf, toRead[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dialect{}, ioErr(err)
		}
		if n == 0 {
			break
		}
	}

	return s.SniffBytes(buf)
}

// SniffFromString wraps text's bytes and delegates to SniffBytes.
func (s *Sniffer) SniffFromString(text string) (Dialect, error) {
	return s.SniffBytes([]byte(text))
}

// SniffBytes runs the full detection algorithm (spec section 4.6) over an
// in-memory sample: generate candidates, parse and score each, pick the
// highest-scoring candidate with deterministic tie-breaks, run the header
// detector on the winner, and assemble the Dialect.
func (s *Sniffer) SniffBytes(sample []byte) (Dialect, error) {
	minRows := s.minRows()
	maxRows := s.maxRows()

	if countTerminators(sample) < minRows {
		return Dialect{}, invalidInputErr("fewer than min_rows terminators in sample")
	}

	cands := generateCandidates(sample)
	if len(cands) == 0 {
		return Dialect{}, noValidDialectErr("no candidates could be generated from sample")
	}

	var (
		bestCand  candidate
		bestTable *Table
		bestScore = -1.0
		haveBest  bool
	)

	for _, c := range cands {
		table := parseTolerant(sample, c, maxRows)
		if len(table.Rows) < minRows {
			continue
		}
		cols := classifyColumns(table)
		score := scoreTable(table, cols, minRows)
		if score <= 0 {
			continue
		}

		if !haveBest || isBetterCandidate(sample, score, c, bestScore, bestCand) {
			bestScore = score
			bestCand = c
			bestTable = table
			haveBest = true
		}
	}

	if !haveBest {
		return Dialect{}, noValidDialectErr("no candidate dialect scored above zero")
	}

	cols := classifyColumns(bestTable)
	hasHeaders := detectHeader(bestTable, cols)

	quoting := QuoteNever
	if bestTable.AnyQuoted {
		quoting = QuoteNecessary
	}

	return Dialect{
		Delimiter:  bestCand.delimiter,
		QuoteChar:  bestCand.quote,
		Escape:     bestCand.escape,
		HasHeaders: hasHeaders,
		Terminator: bestTable.Terminator,
		Quoting:    quoting,
	}, nil
}

// isBetterCandidate reports whether candidate cand (scoring score) should
// replace the current best (curScore, curCand), applying the tie-break order
// from spec section 4.4: higher raw delimiter frequency in the sample, then
// delimiter preference order, then quote preference order, then escape
// preference order.
func isBetterCandidate(sample []byte, score float64, cand candidate, curScore float64, curCand candidate) bool {
	if score != curScore {
		return score > curScore
	}

	freqNew := byteFrequency(sample, cand.delimiter)
	freqCur := byteFrequency(sample, curCand.delimiter)
	if freqNew != freqCur {
		return freqNew > freqCur
	}

	rankNew := delimiterRank(cand.delimiter)
	rankCur := delimiterRank(curCand.delimiter)
	if rankNew != rankCur {
		return rankNew < rankCur
	}

	qRankNew := quoteRank(cand.quote)
	qRankCur := quoteRank(curCand.quote)
	if qRankNew != qRankCur {
		return qRankNew < qRankCur
	}

	eRankNew := escapeRank(cand.escape)
	eRankCur := escapeRank(curCand.escape)
	return eRankNew < eRankCur
}

// delimiterRank implements the fixed tie-break preference:
// ',' over ';' over '\t' over '|' over ' '.
func delimiterRank(b byte) int {
	switch b {
	case ',':
		return 0
	case ';':
		return 1
	case '\t':
		return 2
	case '|':
		return 3
	case ' ':
		return 4
	default:
		return 5
	}
}

// quoteRank implements the fixed tie-break preference: '"' over '\'' over none.
func quoteRank(q *byte) int {
	if q == nil {
		return 2
	}
	switch *q {
	case '"':
		return 0
	case '\'':
		return 1
	default:
		return 3
	}
}

// escapeRank implements the fixed tie-break preference: None over '\\'.
func escapeRank(e *byte) int {
	if e == nil {
		return 0
	}
	return 1
}

func byteFrequency(sample []byte, b byte) int {
	return bytes.Count(sample, []byte{b})
}

func countTerminators(sample []byte) int {
	count := 0
	i := 0
	for i < len(sample) {
		switch sample[i] {
		case '\r':
			count++
			i++
			if i < len(sample) && sample[i] == '\n' {
				i++
			}
		case '\n':
			count++
			i++
		default:
			i++
		}
	}
	return count
}

func sampleCap(maxRows int) int {
	c := maxRows * assumedMeanLineLen
	if c < minSampleCap {
		return minSampleCap
	}
	if c > maxSampleCap {
		return maxSampleCap
	}
	return c
}
