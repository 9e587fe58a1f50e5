package loader

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
)

// MinDatasetSize is the smallest dataset TrainTestSplit accepts.
const MinDatasetSize = 5

// NewSource returns a random source seeded with seed, or with the clock when seed is 0.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// TrainTestSplit shuffles ds with rng and puts the first floor(len*testRatio)
// samples in the test set and the rest in the training set. ds is not modified.
// A nil rng uses a clock-seeded source.
func TrainTestSplit(ds data.Dataset, testRatio float64, rng *rand.Rand) (data.Split, error) {
	if !(testRatio > 0 && testRatio < 1) {
		return data.Split{}, fmt.Errorf("%w: test fraction %v outside (0, 1)", data.ErrInvalidArgument, testRatio)
	}
	n := len(ds)
	if n < MinDatasetSize {
		return data.Split{}, fmt.Errorf("%w: %d samples, need at least %d", data.ErrDatasetTooSmall, n, MinDatasetSize)
	}
	if err := ds.Validate(); err != nil {
		return data.Split{}, err
	}
	nTest := int(float64(n) * testRatio)
	if nTest == 0 || nTest == n {
		return data.Split{}, fmt.Errorf("%w: %d samples at test fraction %v leave an empty side", data.ErrDatasetTooSmall, n, testRatio)
	}
	if rng == nil {
		rng = NewSource(0)
	}

	indices := rng.Perm(n)
	split := data.Split{
		Test:  make(data.Dataset, 0, nTest),
		Train: make(data.Dataset, 0, n-nTest),
	}
	for i, idx := range indices {
		if i < nTest {
			split.Test = append(split.Test, ds[idx])
		} else {
			split.Train = append(split.Train, ds[idx])
		}
	}
	return split, nil
}
