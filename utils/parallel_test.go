package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Even split
		pm := NewPartitionMap(4, 100)
		var total int
		for n := 0; n < pm.ParallelDegree; n++ {
			total += pm.GetBucketDimension(n)
		}
		assert.Equal(t, 100, total)
	}
	{ // Maximum imbalance of one item
		pm := NewPartitionMap(3, 10)
		min, max := pm.GetBucketDimension(0), pm.GetBucketDimension(0)
		var total int
		for n := 0; n < pm.ParallelDegree; n++ {
			d := pm.GetBucketDimension(n)
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
			total += d
		}
		assert.Equal(t, 10, total)
		assert.LessOrEqual(t, max-min, 1)
	}
	{ // Buckets tile the range contiguously
		pm := NewPartitionMap(7, 23)
		var next int
		for n := 0; n < pm.ParallelDegree; n++ {
			k1, k2 := pm.GetBucketRange(n)
			assert.Equal(t, next, k1)
			next = k2
		}
		assert.Equal(t, 23, next)
	}
	{ // More workers than work collapses to one item per bucket
		pm := NewPartitionMap(16, 3)
		assert.Equal(t, 3, pm.ParallelDegree)
	}
}
