package model

import "github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"

// Classifier is a supervised model over labeled samples.
type Classifier interface {
	Fit(train data.Dataset) error
	Predict(X [][]float64) ([]string, error)
}
