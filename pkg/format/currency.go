// Package format renders monetary amounts and rates for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-R$ 1,234.56"). An empty symbol falls back to the
// default currency symbol.
func Currency(symbol string, amount float64) string {
	symbol = Symbol(symbol)
	formatted := NumericCurrency(math.Abs(amount))
	if mathutil.Round(amount) < 0 {
		return "-" + symbol + " " + formatted
	}
	return symbol + " " + formatted
}

// Symbol trims a currency symbol and falls back to the default one.
func Symbol(symbol string) string {
	if trimmed := strings.TrimSpace(symbol); trimmed != "" {
		return trimmed
	}
	return constants.DefaultCurrencySymbol
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent formats a percentage with two decimals (e.g., "110.50%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
