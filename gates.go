package main

import (
	"fmt"
	"math"
	"math/cmplx"
)

// GateKind identifies one of the supported base gates. The set is closed:
// every gate in a circuit resolves to one of these 2x2 unitaries, with
// controls handled by the operator builder.
type GateKind int

const (
	GateIdentity GateKind = iota
	GatePauliX
	GateHadamard
	GateU3
)

// String returns the QASM-style lowercase name of the gate kind.
func (k GateKind) String() string {
	switch k {
	case GateIdentity:
		return "id"
	case GatePauliX:
		return "x"
	case GateHadamard:
		return "h"
	case GateU3:
		return "u3"
	}
	return fmt.Sprintf("gate(%d)", int(k))
}

// kindFromName maps a QASM-style gate name to its kind.
func kindFromName(name string) (GateKind, bool) {
	switch name {
	case "id", "i":
		return GateIdentity, true
	case "x":
		return GatePauliX, true
	case "h":
		return GateHadamard, true
	case "u3":
		return GateU3, true
	}
	return 0, false
}

// U3Params holds the three Euler angles of a u3 gate, in radians.
type U3Params struct {
	Theta  float64
	Phi    float64
	Lambda float64
}

// truncateU3 enables the legacy 4-decimal truncation of the sine and cosine
// terms inside U3. Off by default: it slightly breaks exact unitarity.
var truncateU3 bool

// Identity returns the 2x2 identity gate.
func Identity() Matrix {
	return Matrix{
		{1, 0},
		{0, 1},
	}
}

// PauliX returns the 2x2 bit-flip (NOT) gate.
func PauliX() Matrix {
	return Matrix{
		{0, 1},
		{1, 0},
	}
}

// Hadamard returns the 2x2 Hadamard gate.
func Hadamard() Matrix {
	h := complex(1/math.Sqrt2, 0)
	return Matrix{
		{h, h},
		{h, -h},
	}
}

// U3 returns the general single-qubit rotation
//
//	[[cos(θ/2),          -e^{iλ} sin(θ/2)      ],
//	 [e^{iφ} sin(θ/2),    e^{i(λ+φ)} cos(θ/2)  ]]
//
// Angles are radians. With truncateU3 set, the sine and cosine terms are
// truncated to 4 decimal digits before assembly.
func U3(theta, phi, lambda float64) Matrix {
	cos := math.Cos(theta / 2)
	sin := math.Sin(theta / 2)
	if truncateU3 {
		cos = trunc4(cos)
		sin = trunc4(sin)
	}
	return Matrix{
		{complex(cos, 0), -cmplx.Exp(complex(0, lambda)) * complex(sin, 0)},
		{cmplx.Exp(complex(0, phi)) * complex(sin, 0), cmplx.Exp(complex(0, lambda+phi)) * complex(cos, 0)},
	}
}

// trunc4 drops everything past the fourth decimal digit.
func trunc4(x float64) float64 {
	return math.Trunc(x*1e4) / 1e4
}

// baseUnitary resolves a gate descriptor to its 2x2 matrix. ApplyGate can
// run a gate without a prior Validate, so u3 angles are checked here too.
func baseUnitary(g Gate) (Matrix, error) {
	switch g.Kind {
	case GateIdentity:
		return Identity(), nil
	case GatePauliX:
		return PauliX(), nil
	case GateHadamard:
		return Hadamard(), nil
	case GateU3:
		if g.Params == nil {
			return nil, fmt.Errorf("%w: u3 gate on q[%d] has no angles", ErrInvalidParams, g.Target)
		}
		p := g.Params
		if !numericAngle(p.Theta) || !numericAngle(p.Phi) || !numericAngle(p.Lambda) {
			return nil, fmt.Errorf("%w: u3 gate on q[%d] has non-numeric angle", ErrInvalidParams, g.Target)
		}
		return U3(p.Theta, p.Phi, p.Lambda), nil
	}
	return nil, fmt.Errorf("%w: unknown gate kind %d", ErrInvalidParams, int(g.Kind))
}

// numericAngle reports whether x is a usable angle value.
func numericAngle(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
