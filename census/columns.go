package census

import "math/rand"

// Columns is the column-based layout. All slices have the same length and
// index i of every slice describes the same individual.
type Columns struct {
	Sex     []Sex
	Age     []Age
	Income  []Income
	Country []Country
	Housing []HousingStatus
}

// NewRandomColumns synthesises size individuals, filling one column at a time.
func NewRandomColumns(rng *rand.Rand, size int) Columns {
	s := NewSampler(rng)
	c := Columns{
		Sex:     make([]Sex, size),
		Age:     make([]Age, size),
		Income:  make([]Income, size),
		Country: make([]Country, size),
		Housing: make([]HousingStatus, size),
	}

	for i := range c.Sex {
		c.Sex[i] = s.Sex()
	}
	for i := range c.Age {
		c.Age[i] = s.Age()
	}
	for i := range c.Income {
		c.Income[i] = s.Income()
	}
	for i := range c.Country {
		c.Country[i] = s.Country()
	}
	for i := range c.Housing {
		c.Housing[i] = s.Housing()
	}

	return c
}

func (c Columns) Len() int { return len(c.Age) }

func (c Columns) At(i int) Person {
	return Person{
		Age:     c.Age[i],
		Country: c.Country[i],
		Income:  c.Income[i],
		Housing: c.Housing[i],
		Sex:     c.Sex[i],
	}
}

// BucketizeByAge scans the age column only.
func (c Columns) BucketizeByAge(numBuckets int) Histogram {
	buckets := NewHistogram(numBuckets)
	for _, age := range c.Age {
		buckets[age]++
	}
	return buckets
}
