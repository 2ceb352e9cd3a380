package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"4.5", 4.5, true},
		{"4", 4, true},
		{"0.25", 0.25, true},
		{"n/a", 0, false},
		{"", 0, false},
		{" 4.5", 0, false},
		{"4.5 ", 0, false},
		{"4.", 0, false},
		{".5", 0, false},
		{"4.5.6", 0, false},
		{"-1", 0, false},
		{"+2", 0, false},
		{"4,5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseScore(tc.in)
		assert.Equal(t, tc.valid, ok, "input %q", tc.in)
		if tc.valid {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"40.4", 40.4, true},
		{"-3.7", -3.7, true},
		{"+12.0", 12.0, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"12.", 0, false},
		{".7", 0, false},
		{"1e5", 0, false},
		{"NaN", 0, false},
		{"12,5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseCoordinate(tc.in)
		assert.Equal(t, tc.valid, ok, "input %q", tc.in)
		if tc.valid {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
