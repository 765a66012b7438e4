// SPDX-License-Identifier: MIT

package dataio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/matrix"
)

// Precision is the number of decimals every value is printed with.
const Precision = 4

// appendRow writes "v0,v1,...\n" with Precision decimals.
func appendRow(buf []byte, row []float64) []byte {
	for j, v := range row {
		if j > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, v, 'f', Precision, 64)
	}

	return append(buf, '\n')
}

// WriteRows prints rows, one line each.
func WriteRows(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, row := range rows {
		buf = appendRow(buf[:0], row)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteMatrix prints m row-major.
func WriteMatrix(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	rows := make([][]float64, m.Rows())
	var err error
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
		for j := range rows[i] {
			if rows[i][j], err = m.At(i, j); err != nil {
				return err
			}
		}
	}

	return WriteRows(w, rows)
}

// WriteEigen prints the eigenvalues on one line, then the eigenvector matrix
// with the vectors as columns (line i holds component i of every vector).
func WriteEigen(w io.Writer, res *jacobi.Result) error {
	if err := WriteRows(w, [][]float64{res.Values}); err != nil {
		return err
	}

	return WriteMatrix(w, res.Vectors)
}

// WriteIndices prints integers comma-separated on one line.
func WriteIndices(w io.Writer, idx []int) error {
	var buf []byte
	for i, v := range idx {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	buf = append(buf, '\n')
	_, err := w.Write(buf)

	return err
}
