package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	assert.InDelta(t, 5.0, Euclidean([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.InDelta(t, math.Sqrt(4), Euclidean([]float64{1, 1, 1, 1}, []float64{2, 2, 2, 2}), 1e-12)
}

func TestEuclideanProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vec := func() []float64 {
		v := make([]float64, 4)
		for i := range v {
			v[i] = rng.NormFloat64() * 10
		}
		return v
	}
	for i := 0; i < 200; i++ {
		a, b := vec(), vec()
		d := Euclidean(a, b)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.Equal(t, 0.0, Euclidean(a, a))
		assert.Equal(t, d, Euclidean(b, a))
		if d == 0 {
			assert.Equal(t, a, b)
		}
	}
}
