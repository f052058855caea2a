package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Partition sizes
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, map[int]int{0: 4}, getHisto(0, 4))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Inverted bucket lookup
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				tryCount, bn, min, max := pm.getBucketWithTryCount(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax && tryCount <= 1)
			}
			bn, _, _ := pm.GetBucket(maxIndex)
			assert.Equal(t, -1, bn)
		}
	}
	assert.Equal(t, 1, NewPartitionMap(0, 10).ParallelDegree)
}

func TestParallelFill(t *testing.T) {
	for _, np := range []int{1, 3, 8, 64} {
		A := NewArray3[uint32](7, 5, 3)
		ParallelFill(A.Data, uint32(9), np)
		assert.True(t, A.All(func(v uint32) bool { return v == 9 }), "np = %d", np)
	}
	var calls int32
	ParallelFor(4, 0, func(min, max int) { atomic.AddInt32(&calls, 1) })
	assert.Zero(t, calls)
	// A worker count far above the index count starts one worker per index
	var covered int32
	ParallelFor(1<<20, 3, func(min, max int) {
		atomic.AddInt32(&calls, 1)
		atomic.AddInt32(&covered, int32(max-min))
	})
	assert.Equal(t, int32(3), calls)
	assert.Equal(t, int32(3), covered)
	assert.Equal(t, 3, ThreadCount(3))
	assert.Positive(t, ThreadCount(0))
}
