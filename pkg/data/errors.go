package data

import "errors"

var (
	// ErrInvalidArgument reports a violated precondition: k out of range, an
	// empty training or test set, or mismatched feature dimensionality.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDatasetTooSmall reports a dataset that cannot yield both a non-empty
	// test set and a non-empty training set.
	ErrDatasetTooSmall = errors.New("dataset too small")
)
