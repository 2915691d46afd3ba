package simulation

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleInput() Input {
	return Input{
		Principal:           1000,
		HorizonMonths:       12,
		MonthlyContribution: 0,
		InstallmentCount:    0,
		ReferenceAnnualRate: 12,
		Banks:               []Bank{{Name: "X", PercentOfReference: 100}},
	}
}

func TestProjectEndToEndExample(t *testing.T) {
	result := Project(zap.NewNop(), sampleInput())

	require.Len(t, result.PerBank, 1)
	br := result.PerBank[0]

	assert.Equal(t, "X", br.BankName)
	assert.InDelta(t, 12.0, br.EffectiveAnnualRate, 1e-12)
	assert.InDelta(t, 0.009489, br.MonthlyRate, 1e-6)
	assert.InDelta(t, 1120.00, br.FinalBalance, 1e-6)
	assert.InDelta(t, 120.00, br.NetGain, 1e-6)
	assert.Equal(t, 1000.0, result.TotalInstallmentAmount)
	assert.True(t, br.OutperformsInstallments)
	assert.Equal(t, VerdictCompensates, br.Verdict())
	assert.Len(t, br.Trajectory, 12)
	assert.Equal(t, 1, br.Trajectory[0].Month)
	assert.Equal(t, 12, br.Trajectory[11].Month)
	assert.Equal(t, br.FinalBalance, br.Trajectory[11].Balance)
}

func TestProjectZeroHorizon(t *testing.T) {
	input := sampleInput()
	input.HorizonMonths = 0
	input.MonthlyContribution = 250
	input.Banks = []Bank{{Name: "A", PercentOfReference: 90}, {Name: "B", PercentOfReference: 120}}

	result := Project(nil, input)

	require.Len(t, result.PerBank, 2)
	for _, br := range result.PerBank {
		assert.Empty(t, br.Trajectory, "bank %s", br.BankName)
		assert.Equal(t, input.Principal, br.FinalBalance, "bank %s", br.BankName)
		assert.Equal(t, 0.0, br.NetGain, "bank %s", br.BankName)
		assert.False(t, br.OutperformsInstallments, "equal balance does not outperform")
		assert.Equal(t, VerdictDoesNotCompensate, br.Verdict())
	}
}

func TestProjectWithoutContributionMatchesClosedForm(t *testing.T) {
	for _, n := range []int{1, 6, 24, 120, 360} {
		t.Run(fmt.Sprintf("%d months", n), func(t *testing.T) {
			input := sampleInput()
			input.HorizonMonths = n
			input.ReferenceAnnualRate = 13.65
			input.Banks = []Bank{{Name: "CDB", PercentOfReference: 105}}

			br := Project(nil, input).PerBank[0]
			expected := input.Principal * math.Pow(1+br.MonthlyRate, float64(n))
			assert.InEpsilon(t, expected, br.FinalBalance, 1e-12)
		})
	}
}

func TestProjectWithContribution(t *testing.T) {
	input := sampleInput()
	input.HorizonMonths = 3
	input.MonthlyContribution = 100

	br := Project(nil, input).PerBank[0]
	r := br.MonthlyRate

	b := 1000.0
	for i := 0; i < 3; i++ {
		b = b*(1+r) + 100
	}
	assert.InDelta(t, b, br.FinalBalance, 1e-9)
	assert.InDelta(t, b-1000-300, br.NetGain, 1e-9)
	assert.InDelta(t, 1000*(1+r)+100, br.Trajectory[0].Balance, 1e-9)
}

func TestTotalInstallmentAmountReproducesPrincipal(t *testing.T) {
	principals := []float64{
		0, 0.1, 1, 33.333, 999.99, 1000, 1234.56, 2999.9, 10000000.03, 7.0 / 3.0,
		1e-33, 1e-40, 5e-324, 123456789.123456789, 1e300, math.MaxFloat64,
	}
	counts := []int{1000000007, math.MaxInt32}
	for count := 0; count <= 60; count++ {
		counts = append(counts, count)
	}

	for _, principal := range principals {
		for _, count := range counts {
			got := TotalInstallmentAmount(principal, count)
			if got != principal {
				t.Fatalf("TotalInstallmentAmount(%v, %d) = %v, expected exactly %v", principal, count, got, principal)
			}
		}
	}
}

func TestTotalInstallmentAmountIgnoresNonPositiveCount(t *testing.T) {
	assert.Equal(t, 1500.0, TotalInstallmentAmount(1500, 0))
	assert.Equal(t, 1500.0, TotalInstallmentAmount(1500, -3))
}

func TestProjectIsMonotonicInReferenceRate(t *testing.T) {
	input := sampleInput()
	input.HorizonMonths = 24
	input.MonthlyContribution = 50
	input.Banks = []Bank{{Name: "X", PercentOfReference: 95}}

	previous := math.Inf(-1)
	for rate := 0.0; rate <= 40; rate += 0.5 {
		input.ReferenceAnnualRate = rate
		final := Project(nil, input).PerBank[0].FinalBalance
		assert.GreaterOrEqual(t, final, previous, "rate %v", rate)
		previous = final
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr bool
	}{
		{"valid", func(*Input) {}, false},
		{"no banks", func(in *Input) { in.Banks = nil }, true},
		{"negative horizon", func(in *Input) { in.HorizonMonths = -1 }, true},
		{"negative installments", func(in *Input) { in.InstallmentCount = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sampleInput()
			tt.mutate(&input)
			err := input.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
