package census

// Histogram holds one counter per bucket, indexed by the raw field value.
type Histogram []uint64

// NewHistogram returns a zeroed histogram with numBuckets buckets.
func NewHistogram(numBuckets int) Histogram {
	return make(Histogram, numBuckets)
}

// Total returns the sum of all bucket counts.
func (h Histogram) Total() uint64 {
	var total uint64
	for _, c := range h {
		total += c
	}
	return total
}

// Median returns the median bucket of the histogram.
func (h Histogram) Median() int {
	return FindMedianBucket(h, h.Total())
}

// FindMedianBucket returns the smallest index i such that the cumulative
// count of buckets [0..i] exceeds n/2. n must equal the sum of all buckets;
// if it does not, the cumulative count may never get there and len(buckets)
// is returned.
func FindMedianBucket(buckets []uint64, n uint64) int {
	var cumulative uint64
	for i, c := range buckets {
		cumulative += c
		if cumulative > n/2 {
			return i
		}
	}
	return len(buckets)
}
