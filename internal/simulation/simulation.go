// Package simulation defines the data structures of a purchase simulation and
// the projection engine that compares investing the purchase price at each
// bank's yield against paying for it in installments.
package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned, possibly wrapped, whenever simulation input
// cannot be parsed or violates an invariant.
var ErrInvalidInput = errors.New("invalid input")

// Verdict strings for BankResult.Verdict.
const (
	VerdictCompensates       = "Compensates to invest and pay in installments"
	VerdictDoesNotCompensate = "Does not compensate to invest and pay in installments"
)

// Bank is one bank offering a yield expressed as a percentage of the
// reference rate (e.g. 110 for "110% of CDI").
type Bank struct {
	Name               string  `json:"name"`
	PercentOfReference float64 `json:"percentOfReference"`
}

// Input holds every value needed to run one simulation.
type Input struct {
	Principal           float64 `json:"principal"`
	HorizonMonths       int     `json:"horizonMonths"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	InstallmentCount    int     `json:"installmentCount"`
	ReferenceAnnualRate float64 `json:"referenceAnnualRate"`
	Banks               []Bank  `json:"banks"`
}

// Validate checks the invariants Project relies on.
func (in Input) Validate() error {
	if len(in.Banks) == 0 {
		return fmt.Errorf("%w: at least one bank is required", ErrInvalidInput)
	}
	if in.HorizonMonths < 0 {
		return fmt.Errorf("%w: horizon months must not be negative, got %d", ErrInvalidInput, in.HorizonMonths)
	}
	if in.InstallmentCount < 0 {
		return fmt.Errorf("%w: installment count must not be negative, got %d", ErrInvalidInput, in.InstallmentCount)
	}
	return nil
}

// Point is the balance at the end of a given month.
type Point struct {
	Month   int     `json:"month"`
	Balance float64 `json:"balance"`
}

// BankResult holds the projection for a single bank.
type BankResult struct {
	BankName                string  `json:"bankName"`
	PercentOfReference      float64 `json:"percentOfReference"`
	EffectiveAnnualRate     float64 `json:"effectiveAnnualRate"`
	MonthlyRate             float64 `json:"monthlyRate"`
	FinalBalance            float64 `json:"finalBalance"`
	NetGain                 float64 `json:"netGain"`
	OutperformsInstallments bool    `json:"outperformsInstallments"`
	Trajectory              []Point `json:"trajectory"`
}

// Verdict returns the human-readable buy-vs-installment verdict.
func (br BankResult) Verdict() string {
	if br.OutperformsInstallments {
		return VerdictCompensates
	}
	return VerdictDoesNotCompensate
}

// Result holds the projections for every bank, in input order.
type Result struct {
	PerBank                []BankResult `json:"perBank"`
	TotalInstallmentAmount float64      `json:"totalInstallmentAmount"`
}

// Project runs the monthly-compounded projection for every bank in the
// input. Project assumes the input already passed Validate.
func Project(logger *zap.Logger, input Input) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	total := TotalInstallmentAmount(input.Principal, input.InstallmentCount)
	result := Result{
		PerBank:                make([]BankResult, 0, len(input.Banks)),
		TotalInstallmentAmount: total,
	}

	for _, bank := range input.Banks {
		br := projectBank(input, bank, total)
		logger.Debug(fmt.Sprintf("projected bank %s", bank.Name),
			zap.String("op", "simulation.Project"),
			zap.Float64("effectiveAnnualRate", br.EffectiveAnnualRate),
			zap.Float64("finalBalance", br.FinalBalance),
			zap.Bool("outperformsInstallments", br.OutperformsInstallments),
		)
		result.PerBank = append(result.PerBank, br)
	}

	return result
}

func projectBank(input Input, bank Bank, totalInstallments float64) BankResult {
	effective := mathutil.ApplyPercentage(input.ReferenceAnnualRate, bank.PercentOfReference)
	monthly := mathutil.MonthlyRate(effective)

	horizon := input.HorizonMonths
	if horizon < 0 {
		horizon = 0
	}

	balance := input.Principal
	trajectory := make([]Point, 0, horizon)
	for month := 1; month <= horizon; month++ {
		balance = balance*(1+monthly) + input.MonthlyContribution
		trajectory = append(trajectory, Point{Month: month, Balance: balance})
	}

	return BankResult{
		BankName:                bank.Name,
		PercentOfReference:      bank.PercentOfReference,
		EffectiveAnnualRate:     effective,
		MonthlyRate:             monthly,
		FinalBalance:            balance,
		NetGain:                 balance - input.Principal - input.MonthlyContribution*float64(horizon),
		OutperformsInstallments: balance > totalInstallments,
		Trajectory:              trajectory,
	}
}

// TotalInstallmentAmount returns what would be paid over installmentCount
// interest-free installments. The per-installment value carries
// InstallmentScale digits past the principal's last significant digit and
// the sum is rounded back to the principal's own scale, so the result always
// equals the principal.
func TotalInstallmentAmount(principal float64, installmentCount int) float64 {
	if installmentCount <= 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return principal
	}

	p := decimal.NewFromFloat(principal)
	n := decimal.NewFromInt(int64(installmentCount))
	exp := p.Exponent()
	perInstallment := p.DivRound(n, constants.InstallmentScale-exp)

	return perInstallment.Mul(n).Round(-exp).InexactFloat64()
}
