package model

import (
	"fmt"
	"sort"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
)

// KNN classifies by majority vote among the K nearest training samples.
//
// Neighbours at equal distance keep their training order. When two labels tie
// on votes, the one met first while walking the neighbours nearest-first wins.
type KNN struct {
	K     int
	train data.Dataset
}

// NewKNN creates and returns a new KNN model.
func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

// Fit stores the training data. It fails if the set is empty, ragged, or
// smaller than K.
func (m *KNN) Fit(train data.Dataset) error {
	if len(train) == 0 {
		return fmt.Errorf("%w: empty training set", data.ErrInvalidArgument)
	}
	if err := train.Validate(); err != nil {
		return err
	}
	if err := checkK(m.K, len(train)); err != nil {
		return err
	}
	m.train = train
	return nil
}

func checkK(k, n int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k=%d outside [1, %d]", data.ErrInvalidArgument, k, n)
	}
	return nil
}

// Predict returns one label per row of X.
func (m *KNN) Predict(X [][]float64) ([]string, error) {
	out := make([]string, len(X))
	for i, x := range X {
		label, err := m.PredictOne(x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = label
	}
	return out, nil
}

// PredictOne returns the majority label among the K nearest neighbours of x.
func (m *KNN) PredictOne(x []float64) (string, error) {
	if m.train == nil {
		return "", fmt.Errorf("%w: model is not fitted", data.ErrInvalidArgument)
	}
	// K is exported and may have changed since Fit
	if err := checkK(m.K, len(m.train)); err != nil {
		return "", err
	}
	if len(x) != m.train.Dim() {
		return "", fmt.Errorf("%w: query has %d features, training set has %d", data.ErrInvalidArgument, len(x), m.train.Dim())
	}
	return vote(m.neighbours(x)), nil
}

type neighbour struct {
	d     float64
	label string
}

// neighbours returns the K nearest training samples to x, nearest first.
func (m *KNN) neighbours(x []float64) []neighbour {
	nbrs := make([]neighbour, len(m.train))
	for j, s := range m.train {
		nbrs[j] = neighbour{d: Euclidean(x, s.Features), label: s.Label}
	}
	sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
	return nbrs[:m.K]
}

func vote(nbrs []neighbour) string {
	counts := make(map[string]int, len(nbrs))
	order := make([]string, 0, len(nbrs))
	for _, n := range nbrs {
		if counts[n.label] == 0 {
			order = append(order, n.label)
		}
		counts[n.label]++
	}
	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// Predict classifies a single query against train with k neighbours.
func Predict(query []float64, train data.Dataset, k int) (string, error) {
	m := NewKNN(k)
	if err := m.Fit(train); err != nil {
		return "", err
	}
	return m.PredictOne(query)
}
