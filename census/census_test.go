package census

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayoutsHistogramTotals(t *testing.T) {
	sizes := []int{0, 1, 17, 10_000}

	for _, layout := range Layouts {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", layout.Name, size), func(t *testing.T) {
				pop := layout.CreateRandom(rand.New(rand.NewSource(42)), size)
				require.Equal(t, size, pop.Len())

				hist := pop.BucketizeByAge(AgeBound)
				require.Len(t, hist, AgeBound)
				require.Equal(t, uint64(size), hist.Total())
			})
		}
	}
}

func TestSingleIndividual(t *testing.T) {
	for _, layout := range Layouts {
		t.Run(layout.Name, func(t *testing.T) {
			pop := layout.CreateRandom(rand.New(rand.NewSource(7)), 1)
			require.Equal(t, 1, pop.Len())

			age := pop.At(0).Age
			hist := pop.BucketizeByAge(AgeBound)
			for i, count := range hist {
				if i == int(age) {
					require.Equal(t, uint64(1), count)
				} else {
					require.Zero(t, count, "bucket %d", i)
				}
			}
			require.Equal(t, uint64(1), hist.Total())
			require.Equal(t, int(age), hist.Median())
		})
	}
}

func TestCreateRandomDeterministicForSeed(t *testing.T) {
	for _, layout := range Layouts {
		t.Run(layout.Name, func(t *testing.T) {
			a := layout.CreateRandom(rand.New(rand.NewSource(99)), 500)
			b := layout.CreateRandom(rand.New(rand.NewSource(99)), 500)
			for i := 0; i < a.Len(); i++ {
				require.Equal(t, a.At(i), b.At(i))
			}
		})
	}
}

func TestDistributionShape(t *testing.T) {
	const size = 100_000

	for _, layout := range Layouts {
		t.Run(layout.Name, func(t *testing.T) {
			pop := layout.CreateRandom(rand.New(rand.NewSource(1)), size)

			var ageSum, incomeSum, owners, males float64
			for i := 0; i < pop.Len(); i++ {
				p := pop.At(i)
				require.LessOrEqual(t, int(p.Age), AgeTrials)
				require.GreaterOrEqual(t, int(p.Income), IncomeFloor)

				ageSum += float64(p.Age)
				incomeSum += float64(p.Income - IncomeFloor)
				if p.Housing == Owner {
					owners++
				}
				if p.Sex == Male {
					males++
				}
			}

			require.InDelta(t, AgeTrials*AgeProbability, ageSum/size, 0.2)
			require.InDelta(t, 1.0, incomeSum/size, 0.05)
			require.InDelta(t, OwnerProbability, owners/size, 0.01)
			require.InDelta(t, 0.5, males/size, 0.01)

			require.Equal(t, 30, pop.BucketizeByAge(AgeBound).Median())
		})
	}
}

func TestBucketizeOutOfRangePanics(t *testing.T) {
	records := Records{{Age: 10}}
	require.Panics(t, func() { records.BucketizeByAge(5) })

	columns := Columns{
		Sex:     []Sex{Male},
		Age:     []Age{10},
		Income:  []Income{IncomeFloor},
		Country: []Country{1},
		Housing: []HousingStatus{Owner},
	}
	require.Panics(t, func() { columns.BucketizeByAge(10) })
	require.NotPanics(t, func() { columns.BucketizeByAge(11) })
}

func TestColumnsAt(t *testing.T) {
	columns := Columns{
		Sex:     []Sex{Male, Female},
		Age:     []Age{30, 41},
		Income:  []Income{10001, 10003},
		Country: []Country{12, 200},
		Housing: []HousingStatus{Owner, Renter},
	}

	require.Equal(t, 2, columns.Len())
	require.Equal(t, Person{Age: 41, Country: 200, Income: 10003, Housing: Renter, Sex: Female}, columns.At(1))
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("Columns")
	require.NoError(t, err)
	require.Equal(t, "columns", l.Name)

	_, err = LayoutByName("rows")
	require.ErrorIs(t, err, ErrUnknownLayout)

	require.Equal(t, []string{"records", "columns"}, LayoutNames())
}

func TestBinomialCDF(t *testing.T) {
	cdf := binomialCDF(4, 0.5)
	require.Len(t, cdf, 5)
	expected := []float64{1.0 / 16, 5.0 / 16, 11.0 / 16, 15.0 / 16, 1}
	for i := range expected {
		require.InDelta(t, expected[i], cdf[i], 1e-12)
	}
}
