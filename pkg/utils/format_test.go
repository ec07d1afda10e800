package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1234.56, "R$ 1.234,56"},
		{-1234.56, "-R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{0.5, "R$ 0,50"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"1.234,56", 1234.56},
		{"1234.56", 1234.56},
		{"-R$ 40,00", -40},
		{"R$ 1.000,00", 1000},
		{" R$ 1 234,56 ", 1234.56},
		{"", 0},
		{"abc", 0},
		{"150", 150},
	}
	for _, tt := range tests {
		if got := ParseBRL(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseBRL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(41); !strings.HasPrefix(got, "+") {
		t.Errorf("gains need a + prefix, got %q", got)
	}
	if got := FormatPnL(-41); strings.HasPrefix(got, "+") {
		t.Errorf("losses must not carry a + prefix, got %q", got)
	}
}

// Formatting then parsing preserves the value to cent precision.
func TestBRLRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("parse inverts format", prop.ForAll(
		func(cents int64) bool {
			amount := float64(cents) / 100
			parsed := ParseBRL(FormatBRL(amount))
			return math.Abs(parsed-amount) < 0.005
		},
		gen.Int64Range(-1_000_000_000, 1_000_000_000),
	))

	properties.TestingRun(t)
}
