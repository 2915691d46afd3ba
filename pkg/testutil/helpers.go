// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/iwvelando/cdi-simulator/internal/simulation"
)

// ResultWithBanks builds a result with n banks named "Bank 1".."Bank n".
// Even-numbered positions outperform the installments.
func ResultWithBanks(n int) simulation.Result {
	result := simulation.Result{TotalInstallmentAmount: 1000}
	for i := 0; i < n; i++ {
		result.PerBank = append(result.PerBank, simulation.BankResult{
			BankName:                fmt.Sprintf("Bank %d", i+1),
			PercentOfReference:      100 + float64(i),
			EffectiveAnnualRate:     12,
			FinalBalance:            1120 + float64(i),
			NetGain:                 120 + float64(i),
			OutperformsInstallments: i%2 == 0,
		})
	}
	return result
}

// FindBank finds a bank by name in the result.
// Returns a pointer to the bank result if found, nil otherwise.
func FindBank(result simulation.Result, name string) *simulation.BankResult {
	for i := range result.PerBank {
		if result.PerBank[i].BankName == name {
			return &result.PerBank[i]
		}
	}
	return nil
}

// BankNames returns the bank names of result in order.
func BankNames(result simulation.Result) []string {
	names := make([]string, 0, len(result.PerBank))
	for _, br := range result.PerBank {
		names = append(names, br.BankName)
	}
	return names
}
