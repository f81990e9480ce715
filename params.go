package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches angle expressions built around pi: pi, 2pi, 2*pi,
// pi/2, 3pi/4, -pi, -3*pi/4.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses one angle expression: a plain float or a pi
// expression. Returns the value and true on success.
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(matches[2], 64); err != nil {
			return 0, false
		}
	}
	val := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if matches[1] == "-" {
		val = -val
	}
	return val, true
}

// piFractions lists the angle values formatParam renders symbolically.
var piFractions = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{3 * math.Pi / 2, "3*pi/2"},
	{math.Pi, "pi"},
	{3 * math.Pi / 4, "3*pi/4"},
	{2 * math.Pi / 3, "2*pi/3"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
}

// formatParam renders an angle, using pi notation for recognized fractions.
func formatParam(val float64) string {
	for _, pf := range piFractions {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%g", val)
}

// parseParams parses a comma-separated angle list. Returns nil if any part
// fails to parse.
func parseParams(input string) []float64 {
	var params []float64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, ok := parseParamExpr(part)
		if !ok {
			return nil
		}
		params = append(params, val)
	}
	return params
}
