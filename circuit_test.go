package main

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateAccumulatesAllFailures(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate(GatePauliX, 2)    // target out of range
	c.AddGate(GateHadamard, 0)  // fine
	c.AddGate(GatePauliX, 1, 1) // control equals target

	err := c.Validate()
	if !errors.Is(err, ErrInvalidCircuit) {
		t.Fatalf("got %v, want ErrInvalidCircuit", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "gate 0") || !strings.Contains(msg, "gate 2") {
		t.Errorf("error should name both failing gates, got %q", msg)
	}
	if strings.Contains(msg, "gate 1") {
		t.Errorf("valid gate reported as failing: %q", msg)
	}
}

func TestValidateGate(t *testing.T) {
	angles := &U3Params{Theta: 1, Phi: 2, Lambda: 3}
	tests := []struct {
		name    string
		gate    Gate
		n       int
		wantErr bool
	}{
		{"plain x", Gate{Kind: GatePauliX, Target: 0}, 1, false},
		{"target negative", Gate{Kind: GatePauliX, Target: -1}, 2, true},
		{"target == width", Gate{Kind: GatePauliX, Target: 2}, 2, true},
		{"control out of range", Gate{Kind: GatePauliX, Target: 0, Controls: []int{3}}, 2, true},
		{"control equals target", Gate{Kind: GatePauliX, Target: 1, Controls: []int{1}}, 2, true},
		{"duplicate control", Gate{Kind: GatePauliX, Target: 2, Controls: []int{0, 0}}, 3, true},
		{"toffoli", Gate{Kind: GatePauliX, Target: 2, Controls: []int{0, 1}}, 3, false},
		{"u3 with params", Gate{Kind: GateU3, Target: 0, Params: angles}, 1, false},
		{"u3 missing params", Gate{Kind: GateU3, Target: 0}, 1, true},
		{"u3 nan angle", Gate{Kind: GateU3, Target: 0, Params: &U3Params{Theta: math.NaN()}}, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateGate(tc.gate, tc.n)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateGate = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestQASMRoundTrip(t *testing.T) {
	c := &Circuit{NumQubits: 3}
	c.AddGate(GateHadamard, 0)
	c.AddGate(GatePauliX, 1, 0)
	c.AddGate(GatePauliX, 2, 0, 1)
	c.AddU3(1, math.Pi/2, 0, math.Pi)
	c.AddU3(2, 1.5, -0.25, 0, 0)

	qasm := c.ToQASM()
	parsed := &Circuit{}
	if err := parsed.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}

	if parsed.NumQubits != 3 {
		t.Errorf("NumQubits = %d, want 3", parsed.NumQubits)
	}
	if len(parsed.Gates) != len(c.Gates) {
		t.Fatalf("got %d gates, want %d", len(parsed.Gates), len(c.Gates))
	}
	for i, want := range c.Gates {
		got := parsed.Gates[i]
		if got.Kind != want.Kind || got.Target != want.Target {
			t.Errorf("gate %d: got %s q[%d], want %s q[%d]",
				i, got.Kind, got.Target, want.Kind, want.Target)
		}
		if len(got.Controls) != len(want.Controls) {
			t.Errorf("gate %d: got %d controls, want %d", i, len(got.Controls), len(want.Controls))
			continue
		}
		for j := range want.Controls {
			if got.Controls[j] != want.Controls[j] {
				t.Errorf("gate %d control %d: got q[%d], want q[%d]",
					i, j, got.Controls[j], want.Controls[j])
			}
		}
		if want.Params != nil {
			if got.Params == nil {
				t.Errorf("gate %d: lost u3 params", i)
				continue
			}
			for _, pair := range [][2]float64{
				{got.Params.Theta, want.Params.Theta},
				{got.Params.Phi, want.Params.Phi},
				{got.Params.Lambda, want.Params.Lambda},
			} {
				if math.Abs(pair[0]-pair[1]) > 1e-9 {
					t.Errorf("gate %d: angle %v, want %v", i, pair[0], pair[1])
				}
			}
		}
	}
}

func TestQASMGateNames(t *testing.T) {
	tests := []struct {
		gate Gate
		want string
	}{
		{Gate{Kind: GatePauliX, Target: 1}, "x"},
		{Gate{Kind: GatePauliX, Target: 1, Controls: []int{0}}, "cx"},
		{Gate{Kind: GatePauliX, Target: 2, Controls: []int{0, 1}}, "ccx"},
		{Gate{Kind: GateHadamard, Target: 1, Controls: []int{0}}, "ch"},
		{Gate{Kind: GateU3, Target: 1, Controls: []int{0}}, "cu3"},
	}
	for _, tc := range tests {
		if got := tc.gate.qasmName(); got != tc.want {
			t.Errorf("qasmName = %q, want %q", got, tc.want)
		}
	}
}

func TestParseQASMRejectsUnknownGate(t *testing.T) {
	qasm := "OPENQASM 2.0;\nqreg q[2];\nrz(0.5) q[0];\n"
	c := &Circuit{}
	if err := c.ParseQASM(qasm); !errors.Is(err, ErrInvalidCircuit) {
		t.Errorf("got %v, want ErrInvalidCircuit", err)
	}
}

func TestParseQASMQubitCountMismatch(t *testing.T) {
	qasm := "qreg q[2];\ncx q[0];\n"
	c := &Circuit{}
	if err := c.ParseQASM(qasm); !errors.Is(err, ErrInvalidCircuit) {
		t.Errorf("got %v, want ErrInvalidCircuit", err)
	}
}

func TestParseQASMSkipsDirectives(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

// entangler
qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
barrier q[0], q[1];
`
	c := &Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM: %v", err)
	}
	if c.NumQubits != 2 || len(c.Gates) != 2 {
		t.Errorf("got %d qubits, %d gates; want 2, 2", c.NumQubits, len(c.Gates))
	}
}

func TestCircuitEditing(t *testing.T) {
	c := &Circuit{NumQubits: 2}
	c.AddGate(GateHadamard, 0)
	c.AddGate(GatePauliX, 1, 0)
	c.InsertGate(1, Gate{Kind: GateIdentity, Target: 1})

	if len(c.Gates) != 3 || c.Gates[1].Kind != GateIdentity {
		t.Fatalf("InsertGate misplaced: %+v", c.Gates)
	}

	if g := c.GateAt(1, 1); g == nil || g.Kind != GateIdentity {
		t.Errorf("GateAt(1, 1) = %+v, want the identity gate", g)
	}
	if g := c.GateAt(1, 0); g != nil {
		t.Errorf("GateAt(1, 0) = %+v, want nil for an unrelated qubit", g)
	}

	// The gate at step 1 does not reference qubit 0, so nothing is removed.
	c.RemoveGateAt(1, 0)
	if len(c.Gates) != 3 {
		t.Errorf("RemoveGateAt removed an unrelated gate")
	}
	c.RemoveGateAt(1, 1)
	if len(c.Gates) != 2 {
		t.Errorf("RemoveGateAt failed to remove the identity gate")
	}

	// Dropping qubit 0 takes the h and the cx (via its control) with it.
	c.RemoveGatesOnQubit(0)
	if len(c.Gates) != 0 {
		t.Errorf("RemoveGatesOnQubit left %d gates", len(c.Gates))
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5", 1.5, true},
		{"-0.25", -0.25, true},
		{"pi", math.Pi, true},
		{"-pi", -math.Pi, true},
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"PI/2", math.Pi / 2, true},
		{"", 0, false},
		{"tau", 0, false},
		{"pi/0", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := parseParamExpr(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && math.Abs(got-tc.want) > 1e-10 {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{-math.Pi, "-pi"},
		{math.Pi / 2, "pi/2"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi, "2*pi"},
		{1.5, "1.5"},
		{0, "0"},
	}
	for _, tc := range tests {
		if got := formatParam(tc.input); got != tc.want {
			t.Errorf("formatParam(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseParams(t *testing.T) {
	got := parseParams("pi/2, 0, 1.25")
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 values", got)
	}
	if math.Abs(got[0]-math.Pi/2) > 1e-10 || got[1] != 0 || got[2] != 1.25 {
		t.Errorf("got %v", got)
	}
	if parseParams("pi, nope") != nil {
		t.Errorf("bad list should return nil")
	}
}
