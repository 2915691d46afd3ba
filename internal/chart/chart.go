// Package chart renders the final balance of every bank as a bar chart and
// hands it to an external viewer.
package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/iwvelando/cdi-simulator/internal/simulation"
	"github.com/iwvelando/cdi-simulator/pkg/format"
	"github.com/iwvelando/cdi-simulator/pkg/mathutil"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

const (
	// DefaultTitle is drawn above the bars.
	DefaultTitle = "Final balance per bank"

	defaultWidth  = 800
	defaultHeight = 500
	barWidth      = 60
	barColor      = "4caf50"
	rangeHeadroom = 1.1
)

// Options tunes the rendered chart.
type Options struct {
	Title          string
	CurrencySymbol string
	Width          int
	Height         int
}

// Render draws one bar per bank (x = bank name, y = final balance) and writes
// the PNG to w.
func Render(w io.Writer, result simulation.Result, opts Options) error {
	if len(result.PerBank) == 0 {
		return errors.New("no banks to chart")
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	style := gochart.Style{
		FillColor:   drawing.ColorFromHex(barColor),
		StrokeColor: drawing.ColorFromHex(barColor),
		StrokeWidth: 1,
	}

	bars := make([]gochart.Value, 0, len(result.PerBank))
	lowest, highest := 0.0, 0.0
	for _, br := range result.PerBank {
		bars = append(bars, gochart.Value{Label: br.BankName, Value: br.FinalBalance, Style: style})
		lowest = mathutil.Min(lowest, br.FinalBalance)
		highest = mathutil.Max(highest, br.FinalBalance)
	}
	if highest <= lowest {
		highest = lowest + 1
	}

	graph := gochart.BarChart{
		Title:      title,
		TitleStyle: gochart.Style{FontSize: 14},
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		XAxis:    gochart.Style{FontSize: 10},
		YAxis: gochart.YAxis{
			Name:      fmt.Sprintf("Final balance (%s)", format.Symbol(opts.CurrencySymbol)),
			NameStyle: gochart.Style{FontSize: 10},
			Style:     gochart.Style{FontSize: 10},
			GridMajorStyle: gochart.Style{
				StrokeColor:     drawing.ColorFromHex("bbbbbb"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{4, 4},
			},
			Range: &gochart.ContinuousRange{Min: lowest * rangeHeadroom, Max: highest * rangeHeadroom},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.NumericCurrency(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteFile renders the chart as a PNG file at path.
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

// Viewer shows an image file and returns once the user dismisses it.
type Viewer interface {
	Show(ctx context.Context, path string) error
}

// CommandViewer opens images with an external program, e.g. "feh" or
// "eog", and waits for it to exit.
type CommandViewer struct {
	Command string
	Args    []string
}

// NewCommandViewer splits a command line such as "feh --scale-down" into a
// CommandViewer.
func NewCommandViewer(commandLine string) (*CommandViewer, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("viewer command is empty")
	}
	return &CommandViewer{Command: fields[0], Args: fields[1:]}, nil
}

// Show runs the viewer on path and blocks until it exits.
func (v *CommandViewer) Show(ctx context.Context, path string) error {
	args := append(append([]string(nil), v.Args...), path)
	cmd := exec.CommandContext(ctx, v.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("viewer %s failed: %w: %s", v.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Display renders the chart into a temporary file, shows it with viewer and
// removes the file once the viewer returns.
func Display(ctx context.Context, logger *zap.Logger, viewer Viewer, result simulation.Result, opts Options) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if viewer == nil {
		return errors.New("no chart viewer configured")
	}

	file, err := os.CreateTemp("", "cdi-simulator-*.png")
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	path := file.Name()
	defer func() {
		if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logger.Warn("failed to remove chart file",
				zap.String("op", "chart.Display"),
				zap.String("path", path),
				zap.Error(removeErr),
			)
		}
	}()

	renderErr := Render(file, result, opts)
	if closeErr := file.Close(); renderErr == nil && closeErr != nil {
		renderErr = fmt.Errorf("failed to write chart file: %w", closeErr)
	}
	if renderErr != nil {
		return renderErr
	}

	logger.Debug("showing chart",
		zap.String("op", "chart.Display"),
		zap.String("path", filepath.Base(path)),
	)
	return viewer.Show(ctx, path)
}
