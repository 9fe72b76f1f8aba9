package census

import "math/rand"

// Records is the composite-record layout: every individual is one Person.
type Records []Person

// NewRandomRecords synthesises size individuals, one complete record at a time.
func NewRandomRecords(rng *rand.Rand, size int) Records {
	s := NewSampler(rng)
	records := make(Records, size)
	for i := range records {
		records[i] = s.Person()
	}
	return records
}

func (r Records) Len() int { return len(r) }

func (r Records) At(i int) Person { return r[i] }

// BucketizeByAge walks the records and touches only their age field.
func (r Records) BucketizeByAge(numBuckets int) Histogram {
	buckets := NewHistogram(numBuckets)
	for i := range r {
		buckets[r[i].Age]++
	}
	return buckets
}
