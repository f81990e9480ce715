package main

import "testing"

func TestSplitLabels(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"01,10", []string{"01", "10"}},
		{"01, 10", []string{"01", "10"}},
		{" 01 ,\t10 ", []string{"01", "10"}},
		{"01,,10", []string{"01", "10"}},
		{"11", []string{"11"}},
	}
	for _, tc := range tests {
		got := splitLabels(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("splitLabels(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("splitLabels(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

func TestUnwantedLabels(t *testing.T) {
	got := unwantedLabels(2)
	if len(got) != 2 || got[0] != "01" || got[1] != "10" {
		t.Errorf("unwantedLabels(2) = %v, want [01 10]", got)
	}
}
