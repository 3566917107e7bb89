// sim/clinic/metrics_utils.go
package clinic

import (
	"math"
	"sort"
)

// CalculatePercentile is a util function that calculates the p-th percentile
// of an ascending-sorted data list, interpolating linearly between ranks.
// Returns 0 for an empty list.
func CalculatePercentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if lowerIdx < 0 {
		return data[0]
	}
	if upperIdx >= n {
		return data[n-1]
	}
	if lowerIdx == upperIdx {
		return data[lowerIdx]
	}
	lowerVal := data[lowerIdx]
	upperVal := data[upperIdx]
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

func sortedCopy(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	sort.Float64s(out)
	return out
}
