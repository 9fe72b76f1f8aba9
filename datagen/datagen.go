// Package datagen builds the input datasets replayed by the benchmark harness.
// Values come from a caller supplied generator, so the same helpers serve
// random matrices, constant fixtures and anything in between.
package datagen

import "math/rand"

// Generate returns a slice of length n whose k-th element is the result of
// the k-th call to gen. A count of zero yields an empty slice.
func Generate[T any](gen func() T, n int) []T {
	data := make([]T, n)
	for i := range data {
		data[i] = gen()
	}
	return data
}

// Generate2D returns n independently generated slices of length m each.
func Generate2D[T any](gen func() T, n, m int) [][]T {
	return Generate(func() []T {
		return Generate(gen, m)
	}, n)
}

// UniformUint32 returns a generator drawing uniformly distributed uint32 values from rng.
func UniformUint32(rng *rand.Rand) func() uint32 {
	return rng.Uint32
}

// UniformMatrices builds n random linearised rows x cols matrices of uint32 cells.
func UniformMatrices(rng *rand.Rand, n, rows, cols int) [][]uint32 {
	return Generate2D(UniformUint32(rng), n, rows*cols)
}
