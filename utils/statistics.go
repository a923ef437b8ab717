package utils

import (
	"math"
	"slices"
)

// Sum ...
func Sum(data []float64) (result float64) {
	for _, v := range data {
		result += v
	}
	return result
}

// Mean ...
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float64(len(data))
}

// Max ...
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return slices.Max(data)
}

// Percentile returns the nearest-rank percentile p (0-100) of data. data is not modified.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}

// StandardDeviation ...
func StandardDeviation(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	var variance float64
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(data)))
}
