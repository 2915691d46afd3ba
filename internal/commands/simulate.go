package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/iwvelando/cdi-simulator/internal/chart"
	"github.com/iwvelando/cdi-simulator/internal/config"
	"github.com/iwvelando/cdi-simulator/internal/export"
	"github.com/iwvelando/cdi-simulator/internal/logging"
	"github.com/iwvelando/cdi-simulator/internal/report"
	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/constants"
	"github.com/iwvelando/cdi-simulator/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type simulateOptions struct {
	configPath string
	view       bool
	banks      []string
	values     map[string]*string
}

func newSimulateCommand() *cobra.Command {
	opts := &simulateOptions{values: make(map[string]*string)}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation, print the results and write the requested exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.BoolVar(&opts.view, "view", false, "display the chart with the configured viewer and wait for it to close")
	flags.StringArrayVar(&opts.banks, "bank", nil, "bank as name;percentOfReference, repeatable (replaces configured banks)")

	valueFlags := []struct{ name, usage string }{
		{"principal", "product price"},
		{"months", "months to invest"},
		{"contribution", "additional monthly contribution"},
		{"installments", "number of installments, 0 if paid at once"},
		{"cdi", "current annual CDI in percent"},
		{"output-format", "type of output override: pretty, csv, json"},
		{"currency", "currency symbol override"},
		{"pdf", "write the PDF report to this path"},
		{"xlsx", "write the spreadsheet to this path"},
		{"csv", "write the CSV table to this path"},
		{"chart", "write the bar chart PNG to this path"},
		{"viewer", "command used to display the chart, e.g. feh"},
	}
	for _, f := range valueFlags {
		opts.values[f.name] = flags.String(f.name, "", f.usage)
	}

	return cmd
}

// loadConfiguration reads the config file; a missing default file is not an
// error since every value can come from flags or the environment.
func loadConfiguration(cmd *cobra.Command, path string) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.LoadConfiguration("")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func (opts *simulateOptions) apply(cmd *cobra.Command, conf *config.Configuration) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	targets := map[string]*string{
		"principal":     &conf.Simulation.Principal,
		"months":        &conf.Simulation.HorizonMonths,
		"contribution":  &conf.Simulation.MonthlyContribution,
		"installments":  &conf.Simulation.InstallmentCount,
		"cdi":           &conf.Simulation.ReferenceAnnualRate,
		"output-format": &conf.Output.Format,
		"currency":      &conf.Output.CurrencySymbol,
		"pdf":           &conf.Output.PDF,
		"xlsx":          &conf.Output.XLSX,
		"csv":           &conf.Output.CSV,
		"chart":         &conf.Output.Chart,
		"viewer":        &conf.Output.Viewer,
	}
	for name, target := range targets {
		if changed(name) {
			*target = *opts.values[name]
		}
	}

	if changed("bank") {
		conf.Simulation.Banks = strings.Join(opts.banks, "\n")
	}
}

func runSimulate(cmd *cobra.Command, opts *simulateOptions) error {
	conf, err := loadConfiguration(cmd, opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd, conf)

	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Error("invalid output configuration", zap.String("op", "simulate"), zap.Error(err))
		return err
	}

	input, err := conf.SimulationInput()
	if err != nil {
		logger.Error("simulation aborted", zap.String("op", "simulate"), zap.Error(err))
		return err
	}

	for _, warning := range config.ValidateConfiguration(input) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "simulate"),
		)
	}

	result := simulation.Project(logger, input)

	if err := output.Write(cmd.OutOrStdout(), conf.Output.Format, result, conf.Output.CurrencySymbol); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	exportErr := writeExports(logger, conf.Output, result)

	if opts.view {
		if err := view(cmd, logger, conf.Output, result); err != nil {
			logger.Error("failed to display chart", zap.String("op", "simulate"), zap.Error(err))
			exportErr = errors.Join(exportErr, err)
		}
	}

	return exportErr
}

// writeExports writes every requested export. A failed export does not stop
// the others; all failures are returned together.
func writeExports(logger *zap.Logger, out config.OutputConfig, result simulation.Result) error {
	exports := []struct {
		kind  string
		path  string
		write func(string) error
	}{
		{"pdf", out.PDF, func(path string) error {
			return report.WriteFile(path, result, report.Options{CurrencySymbol: out.CurrencySymbol})
		}},
		{"xlsx", out.XLSX, func(path string) error { return export.WriteFile(path, result) }},
		{"csv", out.CSV, func(path string) error { return export.WriteFile(path, result) }},
		{"chart", out.Chart, func(path string) error {
			return chart.WriteFile(path, result, chart.Options{CurrencySymbol: out.CurrencySymbol})
		}},
	}

	var errs []error
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path); err != nil {
			logger.Error(fmt.Sprintf("failed to write %s export", e.kind),
				zap.String("op", "simulate"),
				zap.String("path", e.path),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		logger.Info(fmt.Sprintf("%s export written", e.kind),
			zap.String("op", "simulate"),
			zap.String("path", e.path),
		)
	}
	return errors.Join(errs...)
}

func view(cmd *cobra.Command, logger *zap.Logger, out config.OutputConfig, result simulation.Result) error {
	viewer, err := chart.NewCommandViewer(out.Viewer)
	if err != nil {
		return fmt.Errorf("set output.viewer or --viewer to display the chart: %w", err)
	}
	return chart.Display(cmd.Context(), logger, viewer, result, chart.Options{CurrencySymbol: out.CurrencySymbol})
}
