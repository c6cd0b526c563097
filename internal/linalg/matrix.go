// Package linalg wraps gonum dense matrices with the vector/matrix
// distinction the calculator exposes to users.
package linalg

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty          = errors.New("matrix is empty")
	ErrRagged         = errors.New("matrix rows have different lengths")
	ErrDimension      = errors.New("dimension mismatch")
	ErrNotSquare      = errors.New("matrix is not square")
	ErrSingular       = errors.New("matrix is singular")
	ErrNotVector      = errors.New("value is not a vector")
	ErrCrossDimension = errors.New("cross product requires two vectors of length 3")
)

// Matrix is a dense real matrix. A vector is stored as a single row and
// keeps its one-dimensional shape through operations that preserve it.
type Matrix struct {
	dense  *mat.Dense
	vector bool
}

// New builds a matrix from rectangular rows.
func New(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, ErrRagged
		}
		data = append(data, row...)
	}
	return &Matrix{dense: mat.NewDense(len(rows), cols, data)}, nil
}

// NewVector builds a one-dimensional vector.
func NewVector(values []float64) (*Matrix, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	data := append([]float64(nil), values...)
	return &Matrix{dense: mat.NewDense(1, len(data), data), vector: true}, nil
}

func wrap(d *mat.Dense, vector bool) *Matrix {
	return &Matrix{dense: d, vector: vector}
}

// Dims returns rows and columns. A vector of length n reports (1, n).
func (m *Matrix) Dims() (int, int) { return m.dense.Dims() }

// IsVector reports whether m is one-dimensional.
func (m *Matrix) IsVector() bool { return m.vector }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.dense.At(i, j) }

// Rows copies the elements out row by row.
func (m *Matrix) Rows() [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.dense.At(i, j)
		}
	}
	return out
}

// Values returns the elements of a vector.
func (m *Matrix) Values() []float64 {
	return m.Rows()[0]
}

func (m *Matrix) sameShape(o *Matrix) bool {
	r1, c1 := m.Dims()
	r2, c2 := o.Dims()
	return r1 == r2 && c1 == c2
}

// Add returns m + o element-wise.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if !m.sameShape(o) {
		return nil, fmt.Errorf("add: %w", ErrDimension)
	}
	var out mat.Dense
	out.Add(m.dense, o.dense)
	return wrap(&out, m.vector && o.vector), nil
}

// Sub returns m - o element-wise.
func (m *Matrix) Sub(o *Matrix) (*Matrix, error) {
	if !m.sameShape(o) {
		return nil, fmt.Errorf("subtract: %w", ErrDimension)
	}
	var out mat.Dense
	out.Sub(m.dense, o.dense)
	return wrap(&out, m.vector && o.vector), nil
}

// Mul returns the matrix product. A vector on the right is treated as a
// column, and the product is then returned as a vector.
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	right := mat.Matrix(o.dense)
	if o.vector && !m.vector {
		right = o.dense.T()
	}
	_, ac := m.Dims()
	br, _ := right.Dims()
	if ac != br {
		return nil, fmt.Errorf("multiply: %w", ErrDimension)
	}
	var out mat.Dense
	out.Mul(m.dense, right)
	if o.vector && !m.vector {
		return wrap(mat.DenseCopyOf(out.T()), true), nil
	}
	return wrap(&out, m.vector), nil
}

// Scale multiplies every element by f.
func (m *Matrix) Scale(f float64) *Matrix {
	var out mat.Dense
	out.Scale(f, m.dense)
	return wrap(&out, m.vector)
}

// Apply maps fn over every element.
func (m *Matrix) Apply(fn func(float64) float64) *Matrix {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return fn(v) }, m.dense)
	return wrap(&out, m.vector)
}

// Inverse returns the inverse of a square matrix.
func (m *Matrix) Inverse() (*Matrix, error) {
	if r, c := m.Dims(); r != c || m.vector && c != 1 {
		return nil, fmt.Errorf("inverse: %w", ErrNotSquare)
	}
	var out mat.Dense
	if err := out.Inverse(m.dense); err != nil {
		return nil, fmt.Errorf("inverse: %w", ErrSingular)
	}
	return wrap(&out, false), nil
}

// Det returns the determinant of a square matrix, the signed product of the
// LU pivots.
func (m *Matrix) Det() (float64, error) {
	if r, c := m.Dims(); r != c || m.vector && c != 1 {
		return 0, fmt.Errorf("determinant: %w", ErrNotSquare)
	}
	var lu mat.LU
	lu.Factorize(m.dense)
	var u mat.TriDense
	lu.UTo(&u)
	_, det := lu.LogDet()
	n, _ := u.Dims()
	for i := 0; i < n; i++ {
		det *= math.Abs(u.At(i, i))
	}
	return det, nil
}

// Transpose returns mᵀ. Vectors are returned unchanged.
func (m *Matrix) Transpose() *Matrix {
	if m.vector {
		return wrap(mat.DenseCopyOf(m.dense), true)
	}
	return wrap(mat.DenseCopyOf(m.dense.T()), false)
}

// Norm returns the Frobenius norm, which is the Euclidean length for vectors.
func (m *Matrix) Norm() float64 {
	return mat.Norm(m.dense, 2)
}

// Dot returns the scalar product of two vectors of equal length.
func (m *Matrix) Dot(o *Matrix) (float64, error) {
	if !m.vector || !o.vector {
		return 0, fmt.Errorf("dot: %w", ErrNotVector)
	}
	a, b := m.Values(), o.Values()
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot: %w", ErrDimension)
	}
	return mat.Dot(mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b)), nil
}

// Cross returns the cross product of two 3-vectors.
func (m *Matrix) Cross(o *Matrix) (*Matrix, error) {
	if !m.vector || !o.vector {
		return nil, fmt.Errorf("cross: %w", ErrNotVector)
	}
	a, b := m.Values(), o.Values()
	if len(a) != 3 || len(b) != 3 {
		return nil, ErrCrossDimension
	}
	return NewVector([]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	})
}

// String renders vectors as [1, 2] and matrices as [[1, 2], [3, 4]].
func (m *Matrix) String() string {
	rows := m.Rows()
	if m.vector {
		return formatRow(rows[0])
	}
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = formatRow(row)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON encodes the matrix as nested arrays.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	if m.vector {
		return json.Marshal(m.Values())
	}
	return json.Marshal(m.Rows())
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = formatElement(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatElement(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
