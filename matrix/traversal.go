package matrix

// This file contains the traversal orders and their harness adapters.

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/perfgo/layoutbench/bench"
)

// ErrUnknownTraversal is returned by TraversalByName for unsupported names.
var ErrUnknownTraversal = errors.New("unknown traversal")

func mustShape(n, cols int) int {
	if n == 0 {
		panic("matrix: empty input")
	}
	if cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid column count %d", cols))
	}
	return n / cols
}

// SumRowOriented sums data as a matrix with cols columns, visiting the cells
// of a row before moving to the next row. Trailing cells that do not fill a
// whole row are ignored. Panics on empty data.
func SumRowOriented[T Integer](data []T, cols int) T {
	rows := mustShape(len(data), cols)

	var sum T
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum += data[i*cols+j]
		}
	}
	return sum
}

// SumColOriented sums the same cells as SumRowOriented, visiting every row
// of a column before moving to the next column.
func SumColOriented[T Integer](data []T, cols int) T {
	rows := mustShape(len(data), cols)

	var sum T
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			sum += data[i*cols+j]
		}
	}
	return sum
}

// SumRandomColumns walks the rows in order but picks a random column for
// every step. The result is a sample of the matrix, not its sum.
func SumRandomColumns[T Integer](data []T, cols int, rng *rand.Rand) T {
	rows := mustShape(len(data), cols)

	var sum T
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum += data[i*cols+rng.Intn(cols)]
		}
	}
	return sum
}

// RowOriented is the harness computation for SumRowOriented.
type RowOriented[T Integer] struct {
	Cols int
}

func (r RowOriented[T]) Compute(data []T) T { return SumRowOriented(data, r.Cols) }

// ColOriented is the harness computation for SumColOriented.
type ColOriented[T Integer] struct {
	Cols int
}

func (c ColOriented[T]) Compute(data []T) T { return SumColOriented(data, c.Cols) }

// RandomColumns is the harness computation for SumRandomColumns.
type RandomColumns[T Integer] struct {
	Cols int
	Rng  *rand.Rand
}

func (r RandomColumns[T]) Compute(data []T) T { return SumRandomColumns(data, r.Cols, r.Rng) }

// Traversal names a visiting order.
type Traversal[T Integer] struct {
	Name        string
	Description string
	New         func(cols int, rng *rand.Rand) bench.Computation[[]T, T]
}

// Traversals lists the supported visiting orders, baseline first.
func Traversals[T Integer]() []Traversal[T] {
	return []Traversal[T]{
		{
			Name:        "row",
			Description: "row by row, consecutive addresses",
			New: func(cols int, _ *rand.Rand) bench.Computation[[]T, T] {
				return RowOriented[T]{Cols: cols}
			},
		},
		{
			Name:        "col",
			Description: "column by column, stride of one row per step",
			New: func(cols int, _ *rand.Rand) bench.Computation[[]T, T] {
				return ColOriented[T]{Cols: cols}
			},
		},
		{
			Name:        "random",
			Description: "row by row with a random column per step",
			New: func(cols int, rng *rand.Rand) bench.Computation[[]T, T] {
				return RandomColumns[T]{Cols: cols, Rng: rng}
			},
		},
	}
}

// TraversalByName looks up one of Traversals.
func TraversalByName[T Integer](name string) (Traversal[T], error) {
	for _, t := range Traversals[T]() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Traversal[T]{}, fmt.Errorf("%w: %q", ErrUnknownTraversal, name)
}
