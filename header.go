package csvqsniffer

import "math"

// headerLengthSigmaFactor is the tunable dial spec section 4.5 calls out as
// not fully pinned by the source description.
const headerLengthSigmaFactor = 2.0

// detectHeader implements the Header Detector from spec section 4.5: for
// each column, vote it header-like by comparing row 0 in isolation against
// the dominant type and length distribution of rows 1... has_headers is true
// iff a strict majority of columns vote header-like and the table has at
// least two rows.
func detectHeader(t *Table, cols []typedColumn) bool {
	if len(t.Rows) < 2 {
		return false
	}

	numCols := len(cols)
	if numCols == 0 {
		return false
	}

	votes := 0
	for j := 0; j < numCols; j++ {
		if columnVotesHeader(t, cols[j], j) {
			votes++
		}
	}
	return votes*2 > numCols
}

func columnVotesHeader(t *Table, col typedColumn, j int) bool {
	row0 := cellAt(t, 0, j)
	row0Type := Classify(row0)

	restTypes := restColumnCounts(t, j)
	restDominant := dominantType(restTypes)

	if row0Type == Text && restDominant != Text && restDominant != Empty {
		return true
	}

	if row0Type != Text {
		return false
	}
	mean, std := restLengthStats(t, j)
	if std == 0 {
		return false
	}
	diff := math.Abs(float64(len(row0)) - mean)
	return diff > headerLengthSigmaFactor*std
}

func cellAt(t *Table, rowIdx, colIdx int) []byte {
	if rowIdx >= len(t.Rows) {
		return nil
	}
	row := t.Rows[rowIdx]
	if colIdx >= len(row) {
		return nil
	}
	return row[colIdx]
}

func restColumnCounts(t *Table, colIdx int) map[DataType]int {
	counts := map[DataType]int{}
	for i := 1; i < len(t.Rows); i++ {
		if colIdx >= len(t.Rows[i]) {
			continue
		}
		counts[Classify(t.Rows[i][colIdx])]++
	}
	return counts
}

func restLengthStats(t *Table, colIdx int) (mean, std float64) {
	var lens []int
	for i := 1; i < len(t.Rows); i++ {
		if colIdx >= len(t.Rows[i]) {
			continue
		}
		lens = append(lens, len(t.Rows[i][colIdx]))
	}
	if len(lens) == 0 {
		return 0, 0
	}
	return meanStdDevRow(lens)
}
