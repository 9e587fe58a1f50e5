package data

import "fmt"

// Sample is one labeled row of the table.
type Sample struct {
	Features []float64
	Label    string
}

// Dataset is an ordered sequence of samples sharing one feature dimensionality.
type Dataset []Sample

// Split partitions a Dataset into disjoint test and training sets.
type Split struct {
	Test  Dataset
	Train Dataset
}

// Dim returns the dimensionality of the first sample, or 0 for an empty dataset.
func (d Dataset) Dim() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Features)
}

// Validate checks that every sample has the same, non-zero number of features.
func (d Dataset) Validate() error {
	dim := d.Dim()
	for i, s := range d {
		if len(s.Features) == 0 {
			return fmt.Errorf("%w: sample %d has no features", ErrInvalidArgument, i)
		}
		if len(s.Features) != dim {
			return fmt.Errorf("%w: sample %d has %d features, expected %d", ErrInvalidArgument, i, len(s.Features), dim)
		}
	}
	return nil
}

// Features returns the feature vectors in dataset order. The vectors are shared, not copied.
func (d Dataset) Features() [][]float64 {
	out := make([][]float64, len(d))
	for i, s := range d {
		out[i] = s.Features
	}
	return out
}

// Labels returns the labels in dataset order.
func (d Dataset) Labels() []string {
	out := make([]string, len(d))
	for i, s := range d {
		out[i] = s.Label
	}
	return out
}

// Classes returns the distinct labels in first-seen order.
func (d Dataset) Classes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range d {
		if _, ok := seen[s.Label]; ok {
			continue
		}
		seen[s.Label] = struct{}{}
		out = append(out, s.Label)
	}
	return out
}
