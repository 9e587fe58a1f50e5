package model

import (
	"fmt"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
)

// Accuracy returns the percentage of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, fmt.Errorf("%w: empty test set", data.ErrInvalidArgument)
	}
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%w: %d labels but %d predictions", data.ErrInvalidArgument, len(yTrue), len(yPred))
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue)) * 100, nil
}

// Score predicts every sample of test with a fitted classifier and returns its accuracy.
func Score(c Classifier, test data.Dataset) (float64, error) {
	if len(test) == 0 {
		return 0, fmt.Errorf("%w: empty test set", data.ErrInvalidArgument)
	}
	pred, err := c.Predict(test.Features())
	if err != nil {
		return 0, err
	}
	return Accuracy(test.Labels(), pred)
}

// Evaluate fits a k-NN model on train and returns its accuracy on test.
func Evaluate(test, train data.Dataset, k int) (float64, error) {
	if len(test) == 0 {
		return 0, fmt.Errorf("%w: empty test set", data.ErrInvalidArgument)
	}
	m := NewKNN(k)
	if err := m.Fit(train); err != nil {
		return 0, err
	}
	return Score(m, test)
}

// ConfusionMatrix counts predictions per (true, predicted) label pair.
type ConfusionMatrix map[string]map[string]int

// NewConfusionMatrix tallies yTrue against yPred. Extra predictions are ignored.
func NewConfusionMatrix(yTrue, yPred []string) ConfusionMatrix {
	cm := make(ConfusionMatrix)
	for i := range yTrue {
		if i >= len(yPred) {
			break
		}
		row, ok := cm[yTrue[i]]
		if !ok {
			row = make(map[string]int)
			cm[yTrue[i]] = row
		}
		row[yPred[i]]++
	}
	return cm
}

// Recall returns the fraction of samples of class label predicted as label.
// It is 0 for a class with no samples.
func (cm ConfusionMatrix) Recall(label string) float64 {
	total := 0
	for _, n := range cm[label] {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(cm[label][label]) / float64(total)
}

// Precision returns the fraction of predictions of label that were correct.
// It is 0 when label was never predicted.
func (cm ConfusionMatrix) Precision(label string) float64 {
	predicted := 0
	for _, row := range cm {
		predicted += row[label]
	}
	if predicted == 0 {
		return 0
	}
	return float64(cm[label][label]) / float64(predicted)
}
