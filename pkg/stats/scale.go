package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
)

// Scaler learns per-column parameters on one table and applies them to others.
type Scaler interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) [][]float64
}

// StandardScaler maps each column to zero mean and unit population variance.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

func column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i := range X {
		col[i] = X[i][j]
	}
	return col
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: cannot fit scaler on empty table", data.ErrInvalidArgument)
	}
	c := len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		s.Mean[j], s.Std[j] = stat.PopMeanStdDev(column(X, j), nil)
		// constant column
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform returns a scaled copy of X. An unfitted scaler returns X as is.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = r
	}
	return out
}

// MinMaxScaler maps each column onto [0, 1] using the fitted range.
// Values outside the fitted range fall outside [0, 1].
type MinMaxScaler struct {
	Min []float64
	Max []float64
	fit bool
}

func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

func (s *MinMaxScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: cannot fit scaler on empty table", data.ErrInvalidArgument)
	}
	c := len(X[0])
	s.Min = make([]float64, c)
	s.Max = make([]float64, c)
	for j := 0; j < c; j++ {
		col := column(X, j)
		s.Min[j], s.Max[j] = floats.Min(col), floats.Max(col)
	}
	s.fit = true
	return nil
}

func (s *MinMaxScaler) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		r := make([]float64, len(row))
		for j, v := range row {
			if span := s.Max[j] - s.Min[j]; span != 0 {
				r[j] = (v - s.Min[j]) / span
			}
		}
		out[i] = r
	}
	return out
}

// RobustScaler centres each column on its median and divides by the
// interquartile range, so a few extreme rows barely move the fit.
type RobustScaler struct {
	Median []float64
	IQR    []float64
	fit    bool
}

func NewRobustScaler() *RobustScaler { return &RobustScaler{} }

func (s *RobustScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: cannot fit scaler on empty table", data.ErrInvalidArgument)
	}
	c := len(X[0])
	s.Median = make([]float64, c)
	s.IQR = make([]float64, c)
	for j := 0; j < c; j++ {
		col := column(X, j)
		sort.Float64s(col)
		s.Median[j] = stat.Quantile(0.5, stat.Empirical, col, nil)
		s.IQR[j] = stat.Quantile(0.75, stat.Empirical, col, nil) - stat.Quantile(0.25, stat.Empirical, col, nil)
		if s.IQR[j] == 0 {
			s.IQR[j] = 1
		}
	}
	s.fit = true
	return nil
}

func (s *RobustScaler) Transform(X [][]float64) [][]float64 {
	if !s.fit {
		return X
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.Median[j]) / s.IQR[j]
		}
		out[i] = r
	}
	return out
}

// NewScaler returns the scaler registered under name: "standard", "minmax",
// "robust", or nil for "none" and "".
func NewScaler(name string) (Scaler, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "standard":
		return NewStandardScaler(), nil
	case "minmax":
		return NewMinMaxScaler(), nil
	case "robust":
		return NewRobustScaler(), nil
	default:
		return nil, fmt.Errorf("%w: unknown scaling %q", data.ErrInvalidArgument, name)
	}
}

func withFeatures(ds data.Dataset, X [][]float64) data.Dataset {
	out := make(data.Dataset, len(ds))
	for i, s := range ds {
		out[i] = data.Sample{Features: X[i], Label: s.Label}
	}
	return out
}

// ScaleSplit fits sc on the training side only and returns a new split with
// both sides transformed. A nil scaler returns split unchanged.
func ScaleSplit(sc Scaler, split data.Split) (data.Split, error) {
	if sc == nil {
		return split, nil
	}
	if err := sc.Fit(split.Train.Features()); err != nil {
		return data.Split{}, err
	}
	return data.Split{
		Test:  withFeatures(split.Test, sc.Transform(split.Test.Features())),
		Train: withFeatures(split.Train, sc.Transform(split.Train.Features())),
	}, nil
}
