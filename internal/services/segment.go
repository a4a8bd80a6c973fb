package services

import (
	"freight-eda/internal/domain"
	"slices"
)

// Number of carrier-frequency buckets.
const BucketCount = 4

// BucketFor places a carrier load count into its quartile bucket:
//
//	1: 1 <= freq <= Q1
//	2: Q1 < freq <= Q2
//	3: Q2 < freq <= Q3
//	4: freq > Q3
//
// Upper bounds are inclusive and lower bounds strict, so fractional
// thresholds never leave a gap. Counts below 1 return 0 (no bucket).
func BucketFor(freq int, q domain.Quartiles) int {
	f := float64(freq)
	switch {
	case freq < 1:
		return 0
	case f <= q.Q1:
		return 1
	case f <= q.Q2:
		return 2
	case f <= q.Q3:
		return 3
	default:
		return 4
	}
}

// SegmentCarriers partitions carriers by load count into the four quartile
// buckets, then hands each bucket's loads through the degenerate-row filter.
//
// Every carrier with at least one load lands in exactly one bucket.
// Buckets are returned in id order; empty buckets are kept.
func SegmentCarriers(loads []domain.LoadRecord, q domain.Quartiles, floor float64) []domain.Bucket {
	counts := countBy(loads, carrierKey)

	bucketOf := make(map[string]int, len(counts))
	buckets := make([]domain.Bucket, BucketCount)
	for i := range buckets {
		buckets[i] = domain.Bucket{ID: i + 1, Carriers: []string{}}
	}

	for k, n := range counts {
		id := BucketFor(n, q)
		if id == 0 {
			continue
		}
		bucketOf[k] = id
		buckets[id-1].Carriers = append(buckets[id-1].Carriers, k)
	}

	members := make([][]domain.LoadRecord, BucketCount)
	for _, l := range loads {
		if id, ok := bucketOf[l.CarrierKey]; ok {
			members[id-1] = append(members[id-1], l)
		}
	}

	for i := range buckets {
		slices.Sort(buckets[i].Carriers)
		buckets[i].Rows = FilterDegenerate(members[i], floor)
	}

	return buckets
}
