package csvqsniffer

import "math"

// delimiterAllowList is the fixed allow-list from spec section 4.3.
var delimiterAllowList = []byte{',', ';', '\t', '|', ' '}

// quoteAllowList is tried alongside "no quote".
var quoteAllowList = []byte{'"', '\''}

// maxCandidates bounds cardinality so scoring stays cheap (spec section 4.3).
const maxCandidates = 30

// generateCandidates enumerates plausible (delimiter, quote, escape) triples
// from byte-frequency evidence in sample plus the fixed allow-lists.
func generateCandidates(sample []byte) []candidate {
	delimiters := candidateDelimiters(sample)

	quotes := []*byte{nil}
	for _, q := range quoteAllowList {
		q := q
		if bytesContain(sample, q) {
			quotes = append(quotes, &q)
		}
	}

	escapes := []*byte{nil}
	backslash := byte('\\')
	escapes = append(escapes, &backslash)

	var out []candidate
	for _, d := range delimiters {
		for _, q := range quotes {
			for _, e := range escapes {
				if tripleHasDuplicate(d, q, e) {
					continue
				}
				out = append(out, candidate{delimiter: d, quote: q, escape: e})
				if len(out) >= maxCandidates {
					return out
				}
			}
		}
	}
	return out
}

func tripleHasDuplicate(d byte, q, e *byte) bool {
	if q != nil && *q == d {
		return true
	}
	if e != nil && *e == d {
		return true
	}
	if q != nil && e != nil && *q == *e {
		return true
	}
	return false
}

// candidateDelimiters unions the allow-list bytes actually present in the
// sample with any byte whose per-line occurrence count has low variance
// across the first several lines (spec section 4.3).
func candidateDelimiters(sample []byte) []byte {
	seen := map[byte]bool{}
	var out []byte

	for _, d := range delimiterAllowList {
		if bytesContain(sample, d) {
			seen[d] = true
			out = append(out, d)
		}
	}

	for _, d := range lowVarianceBytes(sample) {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	if len(out) == 0 {
		// Degenerate case: nothing in the allow-list occurs in the sample.
		// Fall back to the allow-list byte that occurs least (ideally not at
		// all), so the driver can still report a single-column dialect.
		out = append(out, ',')
	}
	return out
}

// lowVarianceBytes finds candidate bytes by counting per-line occurrences of
// every byte across the first several lines and keeping those whose standard
// deviation is low relative to their mean.
func lowVarianceBytes(sample []byte) []byte {
	const maxLines = 10
	const stdDevThreshold = 0.2

	lines := splitLines(sample, maxLines)
	if len(lines) < 2 {
		return nil
	}

	counts := map[byte][]int{}
	for _, line := range lines {
		lineCounts := map[byte]int{}
		for _, b := range line {
			if isPrintableCandidateByte(b) {
				lineCounts[b]++
			}
		}
		for b, c := range lineCounts {
			counts[b] = append(counts[b], c)
		}
	}

	var out []byte
	for b, series := range counts {
		if len(series) != len(lines) {
			continue // byte did not appear on every sampled line
		}
		mean, std := meanStdDev(series)
		if mean == 0 {
			continue
		}
		if std/mean <= stdDevThreshold {
			out = append(out, b)
		}
	}
	return out
}

func isPrintableCandidateByte(b byte) bool {
	return b >= 0x21 && b < 0x7f
}

func splitLines(sample []byte, max int) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(sample) && len(lines) < max; i++ {
		if sample[i] == '\n' {
			end := i
			if end > start && sample[end-1] == '\r' {
				end--
			}
			lines = append(lines, sample[start:end])
			start = i + 1
		}
	}
	if len(lines) < max && start < len(sample) {
		lines = append(lines, sample[start:])
	}
	return lines
}

func meanStdDev(vals []int) (mean, std float64) {
	n := float64(len(vals))
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += float64(v)
	}
	mean = sum / n
	variance := 0.0
	for _, v := range vals {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= n
	std = math.Sqrt(variance)
	return mean, std
}

func bytesContain(sample []byte, b byte) bool {
	for _, s := range sample {
		if s == b {
			return true
		}
	}
	return false
}
