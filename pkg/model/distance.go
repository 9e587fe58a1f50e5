package model

import "gonum.org/v1/gonum/floats"

// Euclidean returns the L2 distance between a and b.
// Both vectors must have the same length.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
