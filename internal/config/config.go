// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/cdi-simulator/internal/form"
	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/mathutil"
	"github.com/iwvelando/cdi-simulator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for cdi-simulator.
type Configuration struct {
	Simulation form.Values   `yaml:"simulation"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format and export configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty"` // pretty, csv, json
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
	PDF            string `yaml:"pdf,omitempty"`    // report path
	XLSX           string `yaml:"xlsx,omitempty"`   // spreadsheet path
	CSV            string `yaml:"csv,omitempty"`    // table path
	Chart          string `yaml:"chart,omitempty"`  // PNG path
	Viewer         string `yaml:"viewer,omitempty"` // command used to display the chart
}

// defaults registers every key so environment overrides apply even when the
// file omits them.
var defaults = map[string]interface{}{
	"simulation.principal":           "",
	"simulation.horizonMonths":       "",
	"simulation.monthlyContribution": "0",
	"simulation.installmentCount":    "0",
	"simulation.referenceAnnualRate": "",
	"simulation.banks":               "",
	"logging.level":                  "",
	"logging.format":                 "",
	"logging.outputFile":             "",
	"output.format":                  constants.OutputFormatPretty,
	"output.currencySymbol":          constants.DefaultCurrencySymbol,
	"output.pdf":                     "",
	"output.xlsx":                    "",
	"output.csv":                     "",
	"output.chart":                   "",
	"output.viewer":                  "",
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yml")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields defaults plus environment
// overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// SimulationInput parses the configured form values.
func (c *Configuration) SimulationInput() (simulation.Input, error) {
	return form.Parse(c.Simulation)
}

// Validate checks the output section.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	checks := []struct {
		kind string
		path string
		exts []string
	}{
		{"pdf", c.Output.PDF, []string{constants.ExtensionPDF}},
		{"xlsx", c.Output.XLSX, []string{constants.ExtensionXLSX}},
		{"csv", c.Output.CSV, []string{constants.ExtensionCSV}},
		{"chart", c.Output.Chart, []string{constants.ExtensionPNG}},
	}
	for _, check := range checks {
		if err := validation.ValidateExportPath(check.kind, check.path, check.exts...); err != nil {
			return err
		}
	}
	return nil
}

// ValidateConfiguration returns warnings about inputs that parse but are
// unlikely to be what the user meant.
func ValidateConfiguration(input simulation.Input) []string {
	var warnings []string

	if mathutil.IsZero(input.Principal) {
		warnings = append(warnings, fmt.Sprintf("principal is %.2f, there is nothing to invest", input.Principal))
	}
	if input.HorizonMonths == 0 {
		warnings = append(warnings, "horizon months is 0, every bank ends with the principal")
	}
	if input.InstallmentCount > input.HorizonMonths {
		warnings = append(warnings, fmt.Sprintf("installment count %d is longer than the %d month horizon",
			input.InstallmentCount, input.HorizonMonths))
	}
	for _, bank := range input.Banks {
		if bank.PercentOfReference <= 0 {
			warnings = append(warnings, fmt.Sprintf("bank '%s' yields %.2f%% of the reference rate", bank.Name, bank.PercentOfReference))
		}
	}
	if input.ReferenceAnnualRate <= 0 {
		warnings = append(warnings, fmt.Sprintf("reference annual rate is %.2f%%", input.ReferenceAnnualRate))
	}

	return warnings
}
