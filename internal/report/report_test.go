package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankLines(t *testing.T) {
	br := simulation.BankResult{
		BankName:                "Inter",
		PercentOfReference:      110,
		EffectiveAnnualRate:     13.2,
		FinalBalance:            11320.456,
		NetGain:                 -15,
		OutperformsInstallments: false,
	}

	lines := bankLines(br, "R$")
	require.Len(t, lines, 4)

	assert.Equal(t, "Bank: Inter", lines[0].text)
	assert.Equal(t, "CDI: 110.00% | Annual rate: 13.20%", lines[1].text)
	assert.Equal(t, "Final balance: R$ 11,320.46 | Net gain: -R$ 15.00", lines[2].text)
	assert.Equal(t, simulation.VerdictDoesNotCompensate, lines[3].text)
	assert.Equal(t, marginLeft, lines[0].x)
	assert.Equal(t, indentLeft, lines[3].x)
}

func TestFooterLine(t *testing.T) {
	footer := footerLine(testutil.ResultWithBanks(1), "")
	assert.Equal(t, "Total in installments (no interest): R$ 1,000.00", footer.text)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		banks int
		pages int
	}{
		{0, 1},
		{1, 1},
		{8, 1},
		{9, 2},
		{17, 2},
		{18, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d banks", tt.banks), func(t *testing.T) {
			pdf := build(testutil.ResultWithBanks(tt.banks), Options{})
			require.False(t, pdf.Err(), "pdf error: %v", pdf.Error())
			assert.Equal(t, tt.pages, pdf.PageNo())
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testutil.ResultWithBanks(3), Options{Title: "Relatório", CurrencySymbol: "R$"}))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestRenderNonLatinBankNames(t *testing.T) {
	result := simulation.Result{
		PerBank: []simulation.BankResult{
			{BankName: "Банк Восток", PercentOfReference: 100, EffectiveAnnualRate: 12, FinalBalance: 1120},
			{BankName: "Ωmega – Crédito", PercentOfReference: 95, EffectiveAnnualRate: 11.4, FinalBalance: 1114},
		},
		TotalInstallmentAmount: 1000,
	}

	pdf := build(result, Options{Title: "Simulação €"})
	require.False(t, pdf.Err(), "pdf error: %v", pdf.Error())

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	// embedded TrueType font program
	assert.Contains(t, buf.String(), "/FontFile2")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, WriteFile(path, testutil.ResultWithBanks(2), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	err = WriteFile(filepath.Join(t.TempDir(), "nope", "report.pdf"), testutil.ResultWithBanks(1), Options{})
	assert.ErrorContains(t, err, "failed to write")
}
