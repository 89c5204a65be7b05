package format

import (
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small amount", 42.5, "$42.50"},
		{"Thousands separator", 1234.56, "$1,234.56"},
		{"Millions", 1234567.89, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Exactly one thousand", 1000, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Currency(tt.amount); result != tt.expected {
				t.Errorf("Currency(%f) = %s, expected %s", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		expected string
	}{
		{"Zero", 0, "0.0%"},
		{"Under one", 0.825, "82.5%"},
		{"Over one", 1.5, "150.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Percent(tt.fraction); result != tt.expected {
				t.Errorf("Percent(%f) = %s, expected %s", tt.fraction, result, tt.expected)
			}
		})
	}
}

func TestSignedPercent(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		expected string
	}{
		{"Positive", 0.125, "+12.5%"},
		{"Negative", -0.03, "-3.0%"},
		{"Zero", 0, "+0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := SignedPercent(tt.fraction); result != tt.expected {
				t.Errorf("SignedPercent(%f) = %s, expected %s", tt.fraction, result, tt.expected)
			}
		})
	}
}
