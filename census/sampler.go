package census

// This file contains the field distributions used to synthesise individuals.

import (
	"math"
	"math/rand"
	"sort"
)

const (
	AgeTrials      = 120
	AgeProbability = 0.25

	// IncomeFloor is added to every geometric income draw.
	IncomeFloor       = 10000
	IncomeProbability = 0.5

	OwnerProbability = 0.68

	MaxCountry = 255
)

// Sampler draws every field from its own fixed distribution. Fields are
// independent of each other. A Sampler is not safe for concurrent use.
type Sampler struct {
	rng    *rand.Rand
	ageCDF []float64
	// log(1-p) of the income distribution
	incomeLogQ float64
}

// NewSampler creates a Sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{
		rng:        rng,
		ageCDF:     binomialCDF(AgeTrials, AgeProbability),
		incomeLogQ: math.Log(1 - IncomeProbability),
	}
}

// Age is binomially distributed with AgeTrials trials of AgeProbability.
func (s *Sampler) Age() Age {
	u := s.rng.Float64()
	k := sort.SearchFloat64s(s.ageCDF, u)
	if k >= len(s.ageCDF) {
		k = len(s.ageCDF) - 1
	}
	return Age(k)
}

// Country is uniform over [0, MaxCountry].
func (s *Sampler) Country() Country {
	return Country(s.rng.Intn(MaxCountry + 1))
}

// Income is IncomeFloor plus the number of failures before the first
// success of a IncomeProbability trial.
func (s *Sampler) Income() Income {
	u := s.rng.Float64()
	failures := math.Floor(math.Log1p(-u) / s.incomeLogQ)
	return IncomeFloor + Income(failures)
}

// Housing is Owner with OwnerProbability, Renter otherwise.
func (s *Sampler) Housing() HousingStatus {
	if s.rng.Float64() < OwnerProbability {
		return Owner
	}
	return Renter
}

// Sex is a fair coin.
func (s *Sampler) Sex() Sex {
	if s.rng.Intn(2) == 0 {
		return Male
	}
	return Female
}

// Person draws every field once.
func (s *Sampler) Person() Person {
	return Person{
		Age:     s.Age(),
		Country: s.Country(),
		Income:  s.Income(),
		Housing: s.Housing(),
		Sex:     s.Sex(),
	}
}

// binomialCDF returns P(X <= k) for k in [0, n].
func binomialCDF(n int, p float64) []float64 {
	cdf := make([]float64, n+1)
	q := 1 - p
	pmf := math.Pow(q, float64(n))
	total := 0.0
	for k := 0; k <= n; k++ {
		total += pmf
		cdf[k] = total
		pmf *= float64(n-k) / float64(k+1) * p / q
	}
	// guard against rounding so every draw lands in range
	cdf[n] = 1
	return cdf
}
