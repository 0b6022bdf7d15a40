package par

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/astroflux/agnjet/mesh"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
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
	if bucketNum < 0 || bucketNum >= pm.ParallelDegree {
		panic(fmt.Sprintf("bucket %d out of bounds", bucketNum))
	}
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

// Degree resolves a requested goroutine count, 0 meaning one per CPU
func Degree(procLimit int) (np int) {
	np = procLimit
	if np <= 0 {
		np = runtime.NumCPU()
	}
	return
}

/*
	CellSweep is the data-parallel for-each-cell primitive. The flattened
	index space nmb * nx3 * nx2 * nx1 over interior cells is split across
	goroutines with a PartitionMap, so each cell is visited by exactly one
	goroutine per sweep: kernels that touch only their own cell's state need
	no locking. fn receives (m, k, j, i) with k/j/i including the ghost
	offset, matching Field indexing.
*/
func CellSweep(np, nmb int, indcs mesh.Indices, fn func(m, k, j, i int)) {
	var (
		nk    = indcs.Ke - indcs.Ks + 1
		nj    = indcs.Je - indcs.Js + 1
		ni    = indcs.Ie - indcs.Is + 1
		total = nmb * nk * nj * ni
		pm    = NewPartitionMap(Degree(np), total)
		wg    = sync.WaitGroup{}
	)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		wg.Add(1)
		go func(bn int) {
			defer wg.Done()
			cMin, cMax := pm.GetBucketRange(bn)
			for c := cMin; c < cMax; c++ {
				i := c % ni
				j := (c / ni) % nj
				k := (c / (ni * nj)) % nk
				m := c / (ni * nj * nk)
				fn(m, k+indcs.Ks, j+indcs.Js, i+indcs.Is)
			}
		}(bn)
	}
	wg.Wait()
}
