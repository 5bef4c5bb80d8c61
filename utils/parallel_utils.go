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

// NewPartitionMap splits [0, maxIndex) into ParallelDegree contiguous buckets.
// A ParallelDegree < 1 means one bucket per CPU. The degree is never larger
// than maxIndex so that no bucket is empty, except when maxIndex is zero.
func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = runtime.NumCPU()
	}
	if maxIndex > 0 && ParallelDegree > maxIndex {
		ParallelDegree = maxIndex
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

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into pm.ParallelDegree pieces, with a maximum imbalance of one item
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

// ForEachBucket runs fn once per bucket, one goroutine each, and waits for
// all of them. The first non-nil error by bucket number is returned.
func (pm *PartitionMap) ForEachBucket(fn func(bn, kMin, kMax int) error) (err error) {
	var (
		NP   = pm.ParallelDegree
		wg   = sync.WaitGroup{}
		errs = make([]error, NP)
	)
	if NP == 1 {
		kMin, kMax := pm.GetBucketRange(0)
		return fn(0, kMin, kMax)
	}
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			kMin, kMax := pm.GetBucketRange(np)
			errs[np] = fn(np, kMin, kMax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}
