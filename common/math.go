package common

import "math"

// https://stackoverflow.com/questions/18390266/how-can-we-truncate-float64-type-to-a-particular-precision
func Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func DecimalToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(Round(num*output)) / output
}

// MinIndex returns the index of the minimum value,
// breaking ties with the lowest index.
func MinIndex(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	min := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[min] {
			min = i
		}
	}
	return min
}
