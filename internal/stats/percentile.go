package stats

import "sort"

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks over the sorted data. Returns 0 for
// empty input; callers treat the empty dataset as a defined zero, not an
// error.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// Quintiles returns the 20/40/60/80/100th percentile boundaries of values.
// Empty input yields five zero boundaries.
func Quintiles(values []float64) [5]float64 {
	var q [5]float64
	if len(values) == 0 {
		return q
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	for i, p := range [5]float64{20, 40, 60, 80, 100} {
		q[i] = percentileSorted(sorted, p)
	}
	return q
}

func percentileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// BandScore scores a value 1-5 against quintile boundaries: the first
// boundary not below the value determines the band. With reverse set,
// lower values score higher (used for recency, where fewer days is better).
func BandScore(value float64, quintiles [5]float64, reverse bool) int {
	for i, threshold := range quintiles {
		if value <= threshold {
			if reverse {
				return 5 - i
			}
			return i + 1
		}
	}
	if reverse {
		return 1
	}
	return 5
}
