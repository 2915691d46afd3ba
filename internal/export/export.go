// Package export writes simulation results as fixed-column tables, either as
// an XLSX workbook or as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/mathutil"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds the exported rows.
const SheetName = "Simulation"

// Header lists the exported columns in order.
var Header = []string{"Bank", "CDI %", "Annual Rate %", "Final Balance", "Net Gain", "Compensates"}

// Row is one exported bank.
type Row struct {
	Bank                string
	PercentOfReference  float64
	EffectiveAnnualRate float64
	FinalBalance        float64
	NetGain             float64
	Compensates         bool
}

// Rows flattens a result into one row per bank, keeping the input order.
func Rows(result simulation.Result) []Row {
	rows := make([]Row, 0, len(result.PerBank))
	for _, br := range result.PerBank {
		rows = append(rows, Row{
			Bank:                br.BankName,
			PercentOfReference:  br.PercentOfReference,
			EffectiveAnnualRate: br.EffectiveAnnualRate,
			FinalBalance:        br.FinalBalance,
			NetGain:             br.NetGain,
			Compensates:         br.OutperformsInstallments,
		})
	}
	return rows
}

func (r Row) cells() []interface{} {
	return []interface{}{
		r.Bank,
		r.PercentOfReference,
		r.EffectiveAnnualRate,
		mathutil.Round(r.FinalBalance),
		mathutil.Round(r.NetGain),
		r.Compensates,
	}
}

func (r Row) strings() []string {
	return []string{
		r.Bank,
		strconv.FormatFloat(r.PercentOfReference, 'f', -1, 64),
		strconv.FormatFloat(r.EffectiveAnnualRate, 'f', -1, 64),
		strconv.FormatFloat(mathutil.Round(r.FinalBalance), 'f', 2, 64),
		strconv.FormatFloat(mathutil.Round(r.NetGain), 'f', 2, 64),
		strconv.FormatBool(r.Compensates),
	}
}

// WriteXLSX writes the rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, result simulation.Result) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range Rows(result) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := row.cells()
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row for bank %s: %w", row.Bank, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the header and rows as comma-separated values.
func WriteCSV(w io.Writer, result simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range Rows(result) {
		if err := cw.Write(row.strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile picks the table format from the file extension and writes the
// result to path.
func WriteFile(path string, result simulation.Result) error {
	var buf bytes.Buffer
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case constants.ExtensionXLSX:
		err = WriteXLSX(&buf, result)
	case constants.ExtensionCSV:
		err = WriteCSV(&buf, result)
	default:
		return fmt.Errorf("unsupported table format %q, expected %s or %s", ext, constants.ExtensionXLSX, constants.ExtensionCSV)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
