package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/private-landing/calc/internal/api"
	"github.com/private-landing/calc/internal/config"
	"github.com/private-landing/calc/internal/eval"
	"github.com/private-landing/calc/internal/logging"
	"github.com/private-landing/calc/internal/plot"
	"github.com/private-landing/calc/internal/session"
	"github.com/private-landing/calc/internal/ui"
)

// errEvalFailed exits 1 after the command has already printed ErrorToken.
var errEvalFailed = errors.New("evaluation failed")

type app struct {
	configPath string
	logFile    string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}
	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	ui.ApplyTheme(ui.ThemeByName(cfg.UI.Theme))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) plotRange() plot.Range {
	return plot.Range{Start: a.cfg.Plot.XStart, End: a.cfg.Plot.XEnd, Step: a.cfg.Plot.Step}
}

func (a *app) exportOptions() plot.ExportOptions {
	return plot.ExportOptions{Width: a.cfg.Plot.Width, Height: a.cfg.Plot.Height}
}

func (a *app) newCalculator() *session.Calculator {
	return session.New(eval.NewEngine(eval.InteractiveScope()), a.log)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "calc",
		Short: "Advanced terminal calculator",
		Long: `calc is a scientific calculator for the terminal.

Run without arguments to open the interactive calculator. It has basic,
scientific and graphical keypads, a history panel and a tools menu for
matrices, equations, base and unit conversion, statistics, plotting and
AI-assisted word problems.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/calc/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to this file")

	root.AddCommand(newEvalCmd(a), newPlotCmd(a))
	return root
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate an expression and print the result",
		Example: `  calc eval "2^3!"
  calc eval "5P(3) + √(16)"
  calc eval -- "-2 × 3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := a.newCalculator()
			calc.Append(strings.Join(args, " "))
			result, err := calc.Equals()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), session.ErrorToken)
				return errEvalFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newPlotCmd(a *app) *cobra.Command {
	var (
		derivative bool
		out        string
		width      int
		height     int
	)
	cmd := &cobra.Command{
		Use:   "plot [f(x)]",
		Short: "Draw f(x) in the terminal and optionally export it",
		Example: `  calc plot "sin(x)"
  calc plot "x^3 - 2x" --derivative --out graph.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			var (
				fig *plot.Figure
				err error
			)
			if derivative {
				fig, err = plot.WithDerivative(expr, a.plotRange())
			} else {
				fig, err = plot.Function(expr, a.plotRange())
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, fig.Caption())
			fmt.Fprintln(w, plot.Render(fig, width, height))
			if out == "" {
				return nil
			}
			if err := plot.Save(fig, out, a.exportOptions()); err != nil {
				return err
			}
			fmt.Fprintf(w, "Saved graph to %s\n", out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&derivative, "derivative", "d", false, "Also plot f'(x)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Export to a .png or .pdf file")
	cmd.Flags().IntVar(&width, "width", 70, "Chart width in columns")
	cmd.Flags().IntVar(&height, "height", 15, "Chart height in rows")
	return cmd
}

func (a *app) runInteractive() error {
	timeout, err := a.cfg.GeminiTimeout()
	if err != nil {
		return err
	}
	client := api.NewClient(a.cfg.Gemini.BaseURL, a.cfg.Gemini.APIKey, a.cfg.Gemini.Model, timeout)
	a.log.Info("starting", zap.String("mode", a.cfg.UI.Mode), zap.String("model", client.Model()))

	m := initialModel(deps{
		calc:      a.newCalculator(),
		solver:    client,
		log:       a.log,
		plotRange: a.plotRange(),
		export:    a.exportOptions(),
		mode:      parseMode(a.cfg.UI.Mode),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run calculator: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errEvalFailed) {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
