package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/spkmeans/matrix"
)

// ExampleMul shows that a diagonal left operand only scales rows.
func ExampleMul() {
	D, _ := matrix.NewDiagonal([]float64{2, 3})
	A, _ := matrix.NewFromRows([][]float64{{1, 1}, {1, 1}})
	P, _ := matrix.Mul(D, A)
	fmt.Print(P)
	// Output:
	// [2, 2]
	// [3, 3]
}

// ExampleNormalizeRowsL2 scales each row to unit length; zero rows stay zero.
func ExampleNormalizeRowsL2() {
	X, _ := matrix.NewFromRows([][]float64{{0, 2}, {0, 0}})
	Y, norms, _ := matrix.NormalizeRowsL2(X)
	fmt.Print(Y)
	fmt.Println(norms)
	// Output:
	// [0, 1]
	// [0, 0]
	// [2 0]
}
