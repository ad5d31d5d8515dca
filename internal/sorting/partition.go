package sorting

import "github.com/dshills/gridview/internal/record"

// PartitionSort returns view ordered by hierarchy using quicksort.
//
// The last element of each range is the pivot and partitioning uses the
// Less comparator over the full hierarchy. The result is not stable; it
// exists as an alternate algorithm with the same contract as BucketSort.
func PartitionSort(view []*record.Record, hierarchy []string, dir Direction) []*record.Record {
	out := make([]*record.Record, len(view))
	copy(out, view)
	quicksort(out, 0, len(out)-1, hierarchy, dir)
	return out
}

func quicksort(a []*record.Record, lo, hi int, hierarchy []string, dir Direction) {
	// Recurse into the smaller side and loop on the larger to bound stack depth.
	for lo < hi {
		p := partitionRange(a, lo, hi, hierarchy, dir)
		if p-lo < hi-p {
			quicksort(a, lo, p-1, hierarchy, dir)
			lo = p + 1
		} else {
			quicksort(a, p+1, hi, hierarchy, dir)
			hi = p - 1
		}
	}
}

func partitionRange(a []*record.Record, lo, hi int, hierarchy []string, dir Direction) int {
	pivot := a[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if Compare(a[j], pivot, Less, hierarchy, dir) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}
