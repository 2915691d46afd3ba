package testutil

import (
	"testing"
)

func TestResultWithBanks(t *testing.T) {
	tests := []struct {
		name  string
		banks int
	}{
		{"no banks", 0},
		{"one bank", 1},
		{"several banks", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResultWithBanks(tt.banks)
			if len(result.PerBank) != tt.banks {
				t.Fatalf("expected %d banks, got %d", tt.banks, len(result.PerBank))
			}
			if result.TotalInstallmentAmount != 1000 {
				t.Errorf("expected total installment amount 1000, got %v", result.TotalInstallmentAmount)
			}
			for i, br := range result.PerBank {
				if br.OutperformsInstallments != (i%2 == 0) {
					t.Errorf("bank %s: unexpected outperforms flag %v", br.BankName, br.OutperformsInstallments)
				}
			}
		})
	}
}

func TestBankNames(t *testing.T) {
	names := BankNames(ResultWithBanks(3))

	expected := []string{"Bank 1", "Bank 2", "Bank 3"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %v", len(expected), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("name %d: expected %s, got %s", i, expected[i], names[i])
		}
	}

	if got := BankNames(ResultWithBanks(0)); len(got) != 0 {
		t.Errorf("expected no names, got %v", got)
	}
}

func TestFindBank(t *testing.T) {
	result := ResultWithBanks(3)

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expected    float64
	}{
		{"Find first bank", "Bank 1", true, 1120},
		{"Find last bank", "Bank 3", true, 1122},
		{"Search for non-existent bank", "Bank 4", false, 0},
		{"Empty name", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindBank(result, tt.searchName)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("expected no bank, got %+v", found)
				}
				return
			}
			if found == nil {
				t.Fatalf("expected to find bank %s", tt.searchName)
			}
			if found.FinalBalance != tt.expected {
				t.Errorf("expected final balance %v, got %v", tt.expected, found.FinalBalance)
			}
		})
	}
}
