// Package cmd implements the exx command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hassan/exx/internal/config"
	"github.com/hassan/exx/internal/frontend"
	"github.com/hassan/exx/internal/report"
)

var (
	cfgFile   string
	verbose   bool
	colorMode string
	format    string
)

// errReported is returned after diagnostics have been printed, so Execute
// only sets the exit status.
var errReported = errors.New("problems reported")

// settings is what every subcommand runs with, resolved once before it
// starts.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
	color  bool
}

var app settings

var rootCmd = &cobra.Command{
	Use:   "exx",
	Short: "Lexer and parser for the exx language",
	Long: `exx tokenizes and parses exx source files and reports problems
as annotated source listings.

Commands:
  lex    - print the token stream of a file
  parse  - print the syntax tree of a file
  check  - report problems in one or more files

Settings are read from --config, $EXX_CONFIG or ./exx.toml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and prints any error that was not already
// reported.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $EXX_CONFIG or ./exx.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color diagnostics: auto, always or never")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "output format: text or yaml")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Discover(cfgFile)
	if err != nil {
		return err
	}

	if colorMode != "" {
		cfg.Output.Color = colorMode
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	app = settings{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})),
		color:  useColor(cfg.Output.Color, stderr),
	}
	app.logger.Debug("configuration loaded",
		"path", cfg.Path,
		"format", cfg.Output.Format,
		"color", app.color,
	)
	return nil
}

// useColor resolves a color mode against the writer diagnostics go to.
// In auto mode only terminals get color, and NO_COLOR turns it off.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func frontendOptions(logger *slog.Logger) frontend.Options {
	return frontend.Options{
		ParseWithDiagnostics: app.cfg.Parser.ParseWithDiagnostics,
		Logger:               logger,
	}
}

func newRenderer(cmd *cobra.Command) *report.Renderer {
	return report.New(cmd.ErrOrStderr(), report.Options{
		Color:    app.color,
		TabWidth: app.cfg.Output.TabWidth,
	})
}

// emit renders diagnostics for one file, stopping after the configured
// maximum.
func emit(cmd *cobra.Command, r *report.Renderer, filename, source string, ds []report.Diagnostic) error {
	limit := app.cfg.Output.MaxDiagnostics
	shown := ds
	if limit > 0 && len(ds) > limit {
		shown = ds[:limit]
	}

	if err := r.RenderAll(filename, source, shown); err != nil {
		return err
	}
	if hidden := len(ds) - len(shown); hidden > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d more problem(s) not shown\n", displayName(filename), hidden)
	}
	return nil
}

// readSource reads a source file, or standard input for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", displayName(path), err)
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == "-" || path == "" {
		return "<stdin>"
	}
	return path
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "exx: %v\n", err)
}
