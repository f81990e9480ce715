package main

import (
	"math"
	"math/rand"
	"testing"
)

const matTolerance = 1e-9

// matApproxEqual reports whether two matrices agree entrywise within tol.
func matApproxEqual(a, b Matrix, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for j := range a[i] {
			d := a[i][j] - b[i][j]
			if math.Abs(real(d)) > tol || math.Abs(imag(d)) > tol {
				return false
			}
		}
	}
	return true
}

// identityMatrix returns the dim x dim identity.
func identityMatrix(dim int) Matrix {
	m := newMatrix(dim)
	for i := range dim {
		m[i][i] = 1
	}
	return m
}

func TestSingleQubitNoControls(t *testing.T) {
	gates := map[string]Matrix{
		"identity": Identity(),
		"pauliX":   PauliX(),
		"hadamard": Hadamard(),
	}
	for name, g := range gates {
		op := BuildOperator(1, g, 0, nil)
		if !matApproxEqual(op, g, 0) {
			t.Errorf("%s: 1-qubit operator should recover the gate exactly, got %v", name, op)
		}
	}
}

func TestNoControlTensorPlacement(t *testing.T) {
	// X at position 1 of a 3-qubit register must equal I ⊗ X ⊗ I.
	op := BuildOperator(3, PauliX(), 1, nil)
	want := kron(kron(Identity(), PauliX()), Identity())
	if !matApproxEqual(op, want, 0) {
		t.Errorf("operator differs from I⊗X⊗I")
	}

	// Qubit 0 is the leftmost factor.
	op = BuildOperator(2, Hadamard(), 0, nil)
	want = kron(Hadamard(), Identity())
	if !matApproxEqual(op, want, 0) {
		t.Errorf("operator differs from H⊗I")
	}
}

func TestCanonicalCNOT(t *testing.T) {
	want := Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
	op := BuildOperator(2, PauliX(), 1, []int{0})
	if !matApproxEqual(op, want, 0) {
		t.Errorf("CNOT(control=0, target=1) = %v, want %v", op, want)
	}
}

func TestReversedCNOT(t *testing.T) {
	// Control above the target: |x y⟩ flips x when y=1.
	// Derived by hand: |01⟩↔|11⟩, i.e. rows/columns 1 and 3 swap.
	want := Matrix{
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	}
	op := BuildOperator(2, PauliX(), 0, []int{1})
	if !matApproxEqual(op, want, 0) {
		t.Errorf("CNOT(control=1, target=0) = %v, want %v", op, want)
	}
}

func TestToffoli(t *testing.T) {
	// Controls 0,1, target 2: swaps |110⟩ and |111⟩ (indices 6, 7) only.
	op := BuildOperator(3, PauliX(), 2, []int{0, 1})
	want := identityMatrix(8)
	want[6][6], want[7][7] = 0, 0
	want[6][7], want[7][6] = 1, 1
	if !matApproxEqual(op, want, 0) {
		t.Errorf("Toffoli operator mismatch: %v", op)
	}
}

func TestInterleavedControls(t *testing.T) {
	// Controls 0 and 2 with the target sandwiched at 1: flips the middle
	// bit only for |101⟩ and |111⟩ (indices 5, 7).
	op := BuildOperator(3, PauliX(), 1, []int{0, 2})
	want := identityMatrix(8)
	want[5][5], want[7][7] = 0, 0
	want[5][7], want[7][5] = 1, 1
	if !matApproxEqual(op, want, 0) {
		t.Errorf("interleaved-control operator mismatch: %v", op)
	}
}

func TestStackedControlsReversed(t *testing.T) {
	// All controls above the target: controls 1,2, target 0 on 3 qubits.
	// Flips the top bit only when both lower bits are 1: |011⟩↔|111⟩.
	op := BuildOperator(3, PauliX(), 0, []int{1, 2})
	want := identityMatrix(8)
	want[3][3], want[7][7] = 0, 0
	want[3][7], want[7][3] = 1, 1
	if !matApproxEqual(op, want, 0) {
		t.Errorf("reversed stacked-control operator mismatch: %v", op)
	}
}

func TestBuiltOperatorsUnitary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gates := []Matrix{Identity(), PauliX(), Hadamard()}

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(4)
		target := rng.Intn(n)

		// Random subset of the remaining qubits as controls.
		var controls []int
		for q := 0; q < n; q++ {
			if q != target && rng.Intn(2) == 1 {
				controls = append(controls, q)
			}
		}

		base := gates[rng.Intn(len(gates))]
		op := BuildOperator(n, base, target, controls)
		product := matMul(op, dagger(op))
		if !matApproxEqual(product, identityMatrix(1<<n), matTolerance) {
			t.Fatalf("O·O† != I for n=%d target=%d controls=%v", n, target, controls)
		}
	}
}

func TestControlledU3Unitary(t *testing.T) {
	op := BuildOperator(3, U3(1.2, 0.7, -0.4), 2, []int{0})
	product := matMul(op, dagger(op))
	if !matApproxEqual(product, identityMatrix(8), matTolerance) {
		t.Errorf("controlled u3 operator is not unitary")
	}
}

func TestApplyRowConvention(t *testing.T) {
	// Row-vector application: the ground state picks out row 0.
	op := BuildOperator(1, PauliX(), 0, nil)
	out := applyRow([]Complex{1, 0}, op)
	if out[0] != 0 || out[1] != 1 {
		t.Errorf("ground · X = %v, want [0 1]", out)
	}
}
