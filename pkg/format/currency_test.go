package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		amount   float64
		expected string
	}{
		{"Default symbol", "", 1120.004, "R$ 1,120.00"},
		{"Custom symbol", "$", 1234567.891, "$ 1,234,567.89"},
		{"Negative", "R$", -1234.5, "-R$ 1,234.50"},
		{"Negative rounding to zero", "R$", -0.001, "R$ 0.00"},
		{"Negative just below a cent", "R$", -0.004999, "R$ 0.00"},
		{"Negative one cent", "R$", -0.01, "-R$ 0.01"},
		{"Small", "R$", 7, "R$ 7.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.symbol, tt.amount); got != tt.expected {
				t.Errorf("Currency(%q, %v) = %q, expected %q", tt.symbol, tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-9876.545); got != "-9,876.55" && got != "-9,876.54" {
		t.Errorf("NumericCurrency returned %q", got)
	}
	if got := NumericCurrency(999.999); got != "1,000.00" {
		t.Errorf("NumericCurrency(999.999) = %q, expected 1,000.00", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(110.5); got != "110.50%" {
		t.Errorf("Percent(110.5) = %q, expected 110.50%%", got)
	}
	if got := Percent(12); got != "12.00%" {
		t.Errorf("Percent(12) = %q, expected 12.00%%", got)
	}
}

func TestSymbol(t *testing.T) {
	if got := Symbol("  US$ "); got != "US$" {
		t.Errorf("Symbol trimmed to %q", got)
	}
	if got := Symbol(""); got != "R$" {
		t.Errorf("Symbol(\"\") = %q, expected default", got)
	}
}
