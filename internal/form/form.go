// Package form turns the raw values of the simulation form into a validated
// simulation.Input.
package form

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/cdi-simulator/internal/simulation"
)

// BankSeparator splits a bank line into name and percent of reference.
const BankSeparator = ";"

// Values holds the form exactly as typed by the user. Banks is the multi-line
// text area where every line is "bankName;percentOfReference".
type Values struct {
	Principal           string `json:"principal" yaml:"principal,omitempty"`
	HorizonMonths       string `json:"horizonMonths" yaml:"horizonMonths,omitempty"`
	MonthlyContribution string `json:"monthlyContribution" yaml:"monthlyContribution,omitempty"`
	InstallmentCount    string `json:"installmentCount" yaml:"installmentCount,omitempty"`
	ReferenceAnnualRate string `json:"referenceAnnualRate" yaml:"referenceAnnualRate,omitempty"`
	Banks               string `json:"banks" yaml:"banks,omitempty"`
}

// FieldError reports which form field was rejected and why. It matches
// simulation.ErrInvalidInput with errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes every FieldError an invalid input error.
func (e *FieldError) Is(target error) bool {
	return target == simulation.ErrInvalidInput
}

// Parse validates every field and builds the simulation input. No partial
// input is returned on failure.
func Parse(values Values) (simulation.Input, error) {
	var input simulation.Input
	var err error

	if input.Principal, err = parseFloat("principal", values.Principal); err != nil {
		return simulation.Input{}, err
	}
	if input.HorizonMonths, err = parseCount("horizon months", values.HorizonMonths); err != nil {
		return simulation.Input{}, err
	}
	if input.MonthlyContribution, err = parseFloat("monthly contribution", values.MonthlyContribution); err != nil {
		return simulation.Input{}, err
	}
	if input.InstallmentCount, err = parseCount("installment count", values.InstallmentCount); err != nil {
		return simulation.Input{}, err
	}
	if input.ReferenceAnnualRate, err = parseFloat("reference annual rate", values.ReferenceAnnualRate); err != nil {
		return simulation.Input{}, err
	}
	if input.Banks, err = ParseBanks(values.Banks); err != nil {
		return simulation.Input{}, err
	}

	if err := input.Validate(); err != nil {
		return simulation.Input{}, err
	}
	return input, nil
}

// ParseBanks parses the bank text area. Blank lines are skipped; a bank name
// seen twice keeps its first position and takes the last percentage.
func ParseBanks(text string) ([]simulation.Bank, error) {
	var banks []simulation.Bank
	position := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, percentText, found := strings.Cut(line, BankSeparator)
		if !found {
			return nil, &FieldError{
				Field:  "banks",
				Reason: fmt.Sprintf("line %d %q is missing the %q separator", lineNo, line, BankSeparator),
			}
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &FieldError{Field: "banks", Reason: fmt.Sprintf("line %d has an empty bank name", lineNo)}
		}

		percent, err := parseFloat(fmt.Sprintf("banks line %d", lineNo), percentText)
		if err != nil {
			return nil, err
		}

		if i, ok := position[name]; ok {
			banks[i].PercentOfReference = percent
			continue
		}
		position[name] = len(banks)
		banks = append(banks, simulation.Bank{Name: name, PercentOfReference: percent})
	}
	if err := scanner.Err(); err != nil {
		return nil, &FieldError{Field: "banks", Reason: err.Error()}
	}

	if len(banks) == 0 {
		return nil, &FieldError{Field: "banks", Reason: "at least one bank is required"}
	}
	return banks, nil
}

func parseFloat(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Reason: "value is required"}
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a number", trimmed)}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a finite number", trimmed)}
	}
	return value, nil
}

func parseCount(field, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Reason: "value is required"}
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a whole number", trimmed)}
	}
	if value < 0 {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("%d must not be negative", value)}
	}
	return value, nil
}
