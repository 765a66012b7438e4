// Package matrix is the dense linear-algebra layer of spkmeans.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix whose rows are independently
//     addressable (Row, SwapRows) without copying the rest of the buffer.
//   - Constructors for zero, identity and row-literal matrices.
//   - Diagonal-aware multiplication: when either operand is diagonal, Mul only
//     scales rows or columns and never runs the O(n³) triple loop.
//   - Transpose, Clone, row-wise L2 normalization and off-diagonal energy.
//   - Central validators (nil, square, symmetric) returning sentinel errors.
//
// Every kernel fails fast with a sentinel error instead of panicking, and
// iterates in a fixed i→j order so results are bit-for-bit reproducible.
package matrix
