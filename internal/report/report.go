// Package report renders simulation results as a paginated PDF document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/format"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Layout in points on a US Letter page. The cursor runs top-down.
const (
	marginLeft    = 50.0
	indentLeft    = 70.0
	marginTop     = 50.0
	bottomReserve = 100.0
	titleGap      = 30.0
	lineGap       = 15.0
	blockGap      = 30.0
	titleSize     = 14.0
	bodySize      = 10.0
	fontFamily    = "Go"
)

// DefaultTitle heads the first page.
const DefaultTitle = "CDI Investment Simulation Report"

// Options tunes the rendered document.
type Options struct {
	Title          string
	CurrencySymbol string
}

// line is one string drawn on the page.
type line struct {
	x    float64
	text string
}

// bankLines lays out the block printed for a single bank.
func bankLines(br simulation.BankResult, symbol string) []line {
	return []line{
		{marginLeft, fmt.Sprintf("Bank: %s", br.BankName)},
		{indentLeft, fmt.Sprintf("CDI: %s | Annual rate: %s", format.Percent(br.PercentOfReference), format.Percent(br.EffectiveAnnualRate))},
		{indentLeft, fmt.Sprintf("Final balance: %s | Net gain: %s", format.Currency(symbol, br.FinalBalance), format.Currency(symbol, br.NetGain))},
		{indentLeft, br.Verdict()},
	}
}

func footerLine(result simulation.Result, symbol string) line {
	return line{marginLeft, fmt.Sprintf("Total in installments (no interest): %s", format.Currency(symbol, result.TotalInstallmentAmount))}
}

// build lays out the whole document.
func build(result simulation.Result, opts Options) *fpdf.Fpdf {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(false, 0)
	// UTF-8 TrueType fonts so bank names outside Latin-1 keep their glyphs.
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	y := marginTop

	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.Text(marginLeft, y, title)
	y += titleGap

	pdf.SetFont(fontFamily, "", bodySize)
	for _, br := range result.PerBank {
		lines := bankLines(br, opts.CurrencySymbol)
		for i, l := range lines {
			pdf.Text(l.x, y, l.text)
			if i < len(lines)-1 {
				y += lineGap
			}
		}
		y += blockGap

		if y > pageHeight-bottomReserve {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", bodySize)
			y = marginTop
		}
	}

	footer := footerLine(result, opts.CurrencySymbol)
	pdf.Text(footer.x, y, footer.text)
	return pdf
}

// Render writes the PDF document for result to w.
func Render(w io.Writer, result simulation.Result, opts Options) error {
	pdf := build(result, opts)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the report and saves it to path.
func WriteFile(path string, result simulation.Result, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, result, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
