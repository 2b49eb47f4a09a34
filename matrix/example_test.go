// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/speigh/matrix"
)

// ExampleDense_Principal extracts the principal submatrix on a support.
func ExampleDense_Principal() {
	A, _ := matrix.NewDenseFrom(3, 3, []float64{
		4, 1, 0,
		1, 4, 2,
		0, 2, 9,
	})
	S, _ := A.Principal([]int{0, 2})
	fmt.Print(S)
	// Output:
	// [4, 0]
	// [0, 9]
}

// ExampleTopGeneralized solves a v = λ b v for a diagonal pencil.
func ExampleTopGeneralized() {
	A, _ := matrix.NewDiag([]float64{2, 6})
	B, _ := matrix.NewDiag([]float64{1, 4})
	val, v, _ := matrix.TopGeneralized(A, B, []float64{1, 1})
	fmt.Printf("λ=%.2f v=[%.2f %.2f]\n", val, v[0], v[1])
	// Output:
	// λ=2.00 v=[1.00 0.00]
}
