package utils

import (
	"runtime"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// GetBucket finds the partition holding index k, bucketNum is -1 when k is out of range
func (pm *PartitionMap) GetBucket(k int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(k)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(k int) (tryCount, bucketNum, min, max int) {
	if k < 0 || k >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// Initial guess, off by at most one since partitions differ in size by one
	bucketNum = int(float64(pm.ParallelDegree*k) / float64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits MaxIndex into ParallelDegree pieces with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ThreadCount resolves a requested worker count, zero or less meaning one per CPU
func ThreadCount(requested int) int {
	if requested < 1 {
		return runtime.NumCPU()
	}
	return requested
}

/*
ParallelFor calls f once per non-empty partition of [0, maxIndex), each on its
own goroutine, and waits for all of them. With one partition f runs on the
calling goroutine. No more workers are started than there are indices.
*/
func ParallelFor(np, maxIndex int, f func(min, max int)) {
	if maxIndex < 1 {
		return
	}
	if np > maxIndex {
		np = maxIndex
	}
	pm := NewPartitionMap(np, maxIndex)
	if pm.ParallelDegree == 1 {
		f(0, maxIndex)
		return
	}
	var wg sync.WaitGroup
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		min, max := pm.GetBucketRange(bn)
		if min == max {
			continue
		}
		wg.Add(1)
		go func(min, max int) {
			defer wg.Done()
			f(min, max)
		}(min, max)
	}
	wg.Wait()
}

// ParallelFill sets every element of data to val using np workers
func ParallelFill[T any](data []T, val T, np int) {
	ParallelFor(np, len(data), func(min, max int) {
		for i := min; i < max; i++ {
			data[i] = val
		}
	})
}
