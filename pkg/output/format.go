// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/cdi-simulator/internal/export"
	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/format"
)

// Write dispatches to the formatter named by outputFormat.
func Write(w io.Writer, outputFormat string, result simulation.Result, currencySymbol string) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, result, currencySymbol)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %s", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, result simulation.Result, currencySymbol string) error {
	for _, br := range result.PerBank {
		_, err := fmt.Fprintf(w, "--- Results for bank %s ---\nCDI: %s | Annual rate: %s\nFinal balance: %s | Net gain: %s\n%s\n\n",
			br.BankName,
			format.Percent(br.PercentOfReference), format.Percent(br.EffectiveAnnualRate),
			format.Currency(currencySymbol, br.FinalBalance), format.Currency(currencySymbol, br.NetGain),
			br.Verdict(),
		)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total in installments (no interest): %s\n",
		format.Currency(currencySymbol, result.TotalInstallmentAmount))
	return err
}

// CsvFormat outputs the exported table in comma-separated value format.
func CsvFormat(w io.Writer, result simulation.Result) error {
	return export.WriteCSV(w, result)
}

// JSONFormat outputs the full result, trajectories included, as indented JSON.
func JSONFormat(w io.Writer, result simulation.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
