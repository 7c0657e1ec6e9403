package dataprep

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrSplitTooSmall is returned when a split would leave either side empty.
var ErrSplitTooSmall = errors.New("dataprep: split leaves an empty partition")

// TrainTestSplit shuffles row indices 0..n-1 with a seeded permutation and
// assigns ceil(testRatio*n) of them to the test side. The same n, ratio and
// seed always produce the same partition.
func TrainTestSplit(n int, testRatio float64, seed int64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("dataprep: test ratio %v outside (0,1)", testRatio)
	}
	nTest := int(math.Ceil(testRatio * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, fmt.Errorf("%w: n=%d test=%d train=%d", ErrSplitTooSmall, n, nTest, nTrain)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	test = append([]int(nil), indices[:nTest]...)
	train = append([]int(nil), indices[nTest:]...)
	return train, test, nil
}
