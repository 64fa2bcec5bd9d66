package csvqsniffer

import "math"

// typedColumn is a histogram from DataType to count, plus the column's
// dominant type (the arg-max over non-Empty types; ties broken by the fixed
// weight order in typeWeightOrder).
type typedColumn struct {
	counts   map[DataType]int
	dominant DataType
	nonEmpty int
}

// typeWeightOrder fixes the tie-break order used both for picking a column's
// dominant type and nowhere else; it mirrors the weight table's grouping
// from highest to lowest weight, then the order typeWeight lists the types in
// within a tier.
var typeWeightOrder = []DataType{
	Integer, Float, Date, Time, DateTime, Currency, Percentage, Boolean,
	Email, Url, Phone,
	Text,
}

// classifyColumns tags every cell in t and returns one typedColumn per
// column index (0..maxRowLen(t)-1).
func classifyColumns(t *Table) []typedColumn {
	numCols := maxRowLen(t)
	cols := make([]typedColumn, numCols)
	for i := range cols {
		cols[i].counts = map[DataType]int{}
	}

	for _, row := range t.Rows {
		for j, field := range row {
			if j >= numCols {
				continue
			}
			dt := Classify(field)
			cols[j].counts[dt]++
			if dt != Empty {
				cols[j].nonEmpty++
			}
		}
	}

	for i := range cols {
		cols[i].dominant = dominantType(cols[i].counts)
	}
	return cols
}

func dominantType(counts map[DataType]int) DataType {
	best := Text
	bestCount := 0
	for _, dt := range typeWeightOrder {
		c := counts[dt]
		if c > bestCount {
			bestCount = c
			best = dt
		}
	}
	return best
}

// scoreTable implements the Uniformity Scorer from spec section 4.4.
func scoreTable(t *Table, cols []typedColumn, minRows int) float64 {
	rows := len(t.Rows)
	numCols := maxRowLen(t)

	if rows < minRows {
		return 0
	}
	if rows == 0 || numCols == 0 {
		return 0
	}

	total := 0.0
	for j := range cols {
		total += columnContribution(cols[j])
	}

	mu, sigma := rowLengthStats(t)
	rowPenaltyRatio := 0.0
	if mu > 0 {
		rowPenaltyRatio = sigma / mu
	}
	total *= 1.0 / (1.0 + rowPenaltyRatio)

	e := emptyFraction(t, cols)
	total *= math.Pow(1.0-e, 2)

	if numCols == 1 {
		total *= 0.1
	}

	if total < 0 {
		return 0
	}
	return total
}

// columnContribution computes w(dominant) * p_j * n_j for one column.
func columnContribution(col typedColumn) float64 {
	if col.nonEmpty == 0 {
		return 0
	}
	dominantCount := col.counts[col.dominant]
	p := float64(dominantCount) / float64(col.nonEmpty)
	w := typeWeight[col.dominant]
	return w * p * float64(col.nonEmpty)
}

func rowLengthStats(t *Table) (mean, std float64) {
	if len(t.Rows) == 0 {
		return 0, 0
	}
	lens := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		lens[i] = len(r)
	}
	return meanStdDevRow(lens)
}

func meanStdDevRow(lens []int) (mean, std float64) {
	n := float64(len(lens))
	sum := 0.0
	for _, l := range lens {
		sum += float64(l)
	}
	mean = sum / n
	variance := 0.0
	for _, l := range lens {
		d := float64(l) - mean
		variance += d * d
	}
	variance /= n
	std = math.Sqrt(variance)
	return mean, std
}

func emptyFraction(t *Table, cols []typedColumn) float64 {
	totalCells := 0
	for _, row := range t.Rows {
		totalCells += len(row)
	}
	if totalCells == 0 {
		return 0
	}
	emptyCells := 0
	for _, col := range cols {
		emptyCells += col.counts[Empty]
	}
	return float64(emptyCells) / float64(totalCells)
}
