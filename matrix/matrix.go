// Package matrix sums the cells of a linearised two-dimensional array in
// different visiting orders.
//
// Cell (i, j) of a rows x cols matrix lives at offset i*cols + j. Walking a
// row touches consecutive addresses, walking a column jumps cols elements per
// step and reuses almost nothing from each cache line it loads.
package matrix

import (
	"errors"
	"fmt"
)

// ErrShape is returned when the data length does not equal rows*cols.
var ErrShape = errors.New("matrix shape does not match data length")

// Integer is the set of cell types. Sums wrap around on overflow, which keeps
// the result independent of the visiting order.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Linear is a row-major matrix stored in a single slice.
type Linear[T Integer] struct {
	data []T
	rows int
	cols int
}

// New wraps data as a rows x cols matrix.
func New[T Integer](rows, cols int, data []T) (Linear[T], error) {
	if rows < 0 || cols < 0 || rows*cols != len(data) {
		return Linear[T]{}, fmt.Errorf("%w: %dx%d with %d cells", ErrShape, rows, cols, len(data))
	}
	return Linear[T]{data: data, rows: rows, cols: cols}, nil
}

func (m Linear[T]) Rows() int { return m.rows }

func (m Linear[T]) Cols() int { return m.cols }

// Data returns the underlying row-major slice.
func (m Linear[T]) Data() []T { return m.data }

// At returns cell (i, j).
func (m Linear[T]) At(i, j int) T {
	return m.data[m.Offset(i, j)]
}

// Offset returns the position of cell (i, j) in Data.
func (m Linear[T]) Offset(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix: cell (%d, %d) outside %dx%d", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

// SumRowOriented walks the matrix row by row.
func (m Linear[T]) SumRowOriented() T { return SumRowOriented(m.data, m.cols) }

// SumColOriented walks the matrix column by column.
func (m Linear[T]) SumColOriented() T { return SumColOriented(m.data, m.cols) }
