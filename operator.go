package main

import "slices"

type Complex = complex128

// Matrix is a dense square complex matrix, row-major.
type Matrix [][]Complex

// newMatrix allocates a zeroed dim x dim matrix.
func newMatrix(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]Complex, dim)
	}
	return m
}

// scalarOne is the 1x1 identity, the seed for Kronecker chains.
func scalarOne() Matrix {
	return Matrix{{1}}
}

// projector0 returns |0><0|, projector1 returns |1><1|. Their sum is the
// identity, which is what makes the two control branches of a built
// operator combine into a unitary.
func projector0() Matrix {
	return Matrix{
		{1, 0},
		{0, 0},
	}
}

func projector1() Matrix {
	return Matrix{
		{0, 0},
		{0, 1},
	}
}

// kron returns the Kronecker product a ⊗ b. The left factor is the more
// significant one, matching the big-endian qubit convention.
func kron(a, b Matrix) Matrix {
	da, db := len(a), len(b)
	out := newMatrix(da * db)
	for i := range da {
		for j := range da {
			aij := a[i][j]
			if aij == 0 {
				continue
			}
			for k := range db {
				for l := range db {
					out[i*db+k][j*db+l] = aij * b[k][l]
				}
			}
		}
	}
	return out
}

// matAdd returns a + b. Both matrices must share dimensions.
func matAdd(a, b Matrix) Matrix {
	out := newMatrix(len(a))
	for i := range a {
		for j := range a[i] {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

// matMul returns the product a · b.
func matMul(a, b Matrix) Matrix {
	dim := len(a)
	out := newMatrix(dim)
	for i := range dim {
		for k := range dim {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			for j := range dim {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out
}

// dagger returns the conjugate transpose of m.
func dagger(m Matrix) Matrix {
	dim := len(m)
	out := newMatrix(dim)
	for i := range dim {
		for j := range dim {
			out[j][i] = conj(m[i][j])
		}
	}
	return out
}

func conj(z Complex) Complex {
	return complex(real(z), -imag(z))
}

// applyRow multiplies a row vector by an operator: out = v · m.
func applyRow(v []Complex, m Matrix) []Complex {
	dim := len(v)
	out := make([]Complex, dim)
	for i := range dim {
		vi := v[i]
		if vi == 0 {
			continue
		}
		row := m[i]
		for j := range dim {
			out[j] += vi * row[j]
		}
	}
	return out
}

// BuildOperator constructs the full 2^n x 2^n unitary for a 2x2 base gate
// acting on target, gated by zero or more control qubits. Qubit 0 is the
// leftmost Kronecker factor and the most significant bit of a basis index.
//
// With controls present the operator splits on the anchor control's basis
// value: the |0><0| branch leaves the register alone, the |1><1| branch
// applies a recursively built operator on the residual sub-register with
// one control peeled off. The anchor is the lowest control when it precedes
// the target and the highest control when every control follows the target;
// either way each recursive call sees a strictly smaller register.
func BuildOperator(n int, base Matrix, target int, controls []int) Matrix {
	if len(controls) == 0 {
		op := scalarOne()
		for q := 0; q < n; q++ {
			if q == target {
				op = kron(op, base)
			} else {
				op = kron(op, Identity())
			}
		}
		return op
	}

	sorted := slices.Clone(controls)
	slices.Sort(sorted)
	if sorted[0] < target {
		return buildForward(n, base, target, sorted)
	}
	return buildReversed(n, base, target, sorted)
}

// buildForward peels the lowest control c. The residual register is
// positions c+1..n-1, so the remaining controls and the target shift down
// by c+1 before the recursive call.
func buildForward(n int, base Matrix, target int, controls []int) Matrix {
	c := controls[0]

	zero := scalarOne()
	for q := 0; q < n; q++ {
		if q == c {
			zero = kron(zero, projector0())
		} else {
			zero = kron(zero, Identity())
		}
	}

	rest := make([]int, 0, len(controls)-1)
	for _, ctrl := range controls[1:] {
		rest = append(rest, ctrl-(c+1))
	}
	sub := BuildOperator(n-c-1, base, target-(c+1), rest)

	one := scalarOne()
	for q := 0; q < c; q++ {
		one = kron(one, Identity())
	}
	one = kron(one, projector1())
	one = kron(one, sub)

	return matAdd(zero, one)
}

// buildReversed peels the highest control c. Here the target and every
// remaining control sit in positions 0..c-1, so no re-indexing is needed;
// the recursive operator becomes the leading Kronecker factor.
func buildReversed(n int, base Matrix, target int, controls []int) Matrix {
	c := controls[len(controls)-1]

	zero := scalarOne()
	for q := 0; q < n; q++ {
		if q == c {
			zero = kron(zero, projector0())
		} else {
			zero = kron(zero, Identity())
		}
	}

	sub := BuildOperator(c, base, target, controls[:len(controls)-1])

	one := kron(sub, projector1())
	for q := c + 1; q < n; q++ {
		one = kron(one, Identity())
	}

	return matAdd(zero, one)
}
