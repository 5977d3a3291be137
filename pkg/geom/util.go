package geom

import (
	"math"
	"sort"
)

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Median returns the middle value of a sorted slice, averaging the two
// middle values for even lengths. An empty slice yields 0.
func Median(items []float64) float64 {
	n := len(items)
	switch {
	case n == 0:
		return 0
	case n%2 == 1:
		return items[n/2]
	}
	a := items[n/2-1]
	b := items[n/2]
	return (a + b) / 2
}

// SortedMedian sorts items in place and returns their median.
func SortedMedian(items []float64) float64 {
	sort.Float64s(items)
	return Median(items)
}
