// Package main provides the CLI entry point for ganymede.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ganymede-tools/ganymede/internal/config"
	"github.com/ganymede-tools/ganymede/internal/logging"
	"github.com/ganymede-tools/ganymede/internal/watch"
	"github.com/ganymede-tools/ganymede/pkg/ganymede"
	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
	"github.com/ganymede-tools/ganymede/pkg/ganymede/output"
	"github.com/ganymede-tools/ganymede/pkg/ganymede/parser"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X main.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	outputPath string
	configPath string
	format     string
	mode       string
	cellsRange string
	cellTypes  []string
	cellsDir   string
	pretty     bool
	render     bool
	watchMode  bool
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ganymede.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ganymede [notebook.ipynb | -]",
		Short: "Inspect the cells of a Jupyter notebook",
		Long: `ganymede loads a Jupyter notebook and emits the source of every cell,
in document order, exactly as stored in the file.

The notebook path defaults to inspect.path from the configuration
(./samples/test.ipynb). Use "-" to read the notebook from stdin.

Exit codes: 0 success, 1 usage or output error, 2 unreadable notebook,
3 malformed JSON, 4 missing cells/source structure.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Configuration file (default: $GANYMEDE_CONFIG or ./ganymede.yaml)")
	rootCmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml, xlsx, sources")
	rootCmd.Flags().StringVar(&mode, "mode", "source", "Inspection mode: source, verbose")
	rootCmd.Flags().StringVar(&cellsRange, "cells", "", "Cell range to keep, 1-based inclusive (e.g. 3, 2:5, 4:)")
	rootCmd.Flags().StringSliceVar(&cellTypes, "type", nil, "Keep only cells of this type (repeatable: code, markdown, raw)")
	rootCmd.Flags().StringVar(&cellsDir, "cells-dir", "", "Directory for per-cell output files")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&render, "render", false, "Render markdown cells in text output")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-inspect whenever the notebook changes")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.Log, verbose)
	defer func() { _ = logger.Sync() }()

	inputPath := cfg.Inspect.Path
	if len(args) == 1 {
		inputPath = args[0]
	}

	opts, err := inspectOptions(cfg)
	if err != nil {
		return err
	}

	if cfg.Inspect.Format == "xlsx" && outputPath == "" && cellsDir == "" {
		return errors.New("xlsx output requires --output")
	}

	inspectOnce := func() error {
		nb, err := inspect(cmd.InOrStdin(), inputPath, opts)
		if err != nil {
			return fmt.Errorf("inspection failed: %w", err)
		}
		logger.Debug("notebook inspected",
			zap.String("path", inputPath),
			zap.Int("cells", len(nb.Cells)),
		)
		return writeResult(cmd.OutOrStdout(), nb, cfg)
	}

	if !watchMode {
		return inspectOnce()
	}

	if inputPath == ganymede.StdinName {
		return errors.New("--watch cannot be used with stdin")
	}
	return runWatch(cmd.Context(), inputPath, cfg, logger, inspectOnce, cmd.ErrOrStderr())
}

// applyFlagOverrides copies explicitly set flags over configuration values.
func applyFlagOverrides(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("format") {
		cfg.Inspect.Format = format
	}
	if fs.Changed("mode") {
		cfg.Inspect.Mode = mode
	}
	if fs.Changed("pretty") {
		cfg.Inspect.Pretty = pretty
	}
	if fs.Changed("render") {
		cfg.Inspect.Render = render
	}
}

func inspectOptions(cfg *config.Config) (ganymede.Options, error) {
	extractMode, err := ganymede.ParseMode(cfg.Inspect.Mode)
	if err != nil {
		return ganymede.Options{}, err
	}

	// Rendering needs cell types, which only verbose mode reports.
	if cfg.Inspect.Render && cfg.Inspect.Format == "text" {
		extractMode = ganymede.ModeVerbose
	}

	opts := ganymede.Options{
		Mode:      extractMode,
		CellTypes: cellTypes,
	}

	if cellsRange != "" {
		r, err := parser.ParseCellRange(cellsRange)
		if err != nil {
			return ganymede.Options{}, err
		}
		opts.Range = r
	}

	return opts, nil
}

func inspect(stdin io.Reader, path string, opts ganymede.Options) (*models.NotebookData, error) {
	if path == ganymede.StdinName {
		return ganymede.InspectReader(stdin, ganymede.StdinName, opts)
	}
	return ganymede.Inspect(path, opts)
}

func writeResult(stdout io.Writer, nb *models.NotebookData, cfg *config.Config) error {
	// Write per-cell files
	if cellsDir != "" {
		if err := output.WriteCellFiles(nb, cellsDir, cfg.Inspect.Pretty); err != nil {
			return fmt.Errorf("failed to write cell files: %w", err)
		}
		if outputPath == "" {
			return nil
		}
	}

	w := stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeFormat(w, nb, cfg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeFormat(w io.Writer, nb *models.NotebookData, cfg *config.Config) error {
	var data []byte
	var err error

	switch cfg.Inspect.Format {
	case "text":
		header, err := os.Getwd()
		if err != nil {
			return err
		}
		return output.WriteText(w, nb, output.TextOptions{
			Header:   header,
			Render:   cfg.Inspect.Render,
			WordWrap: cfg.Inspect.WordWrap,
		})
	case "xlsx":
		return output.WriteXLSX(w, nb)
	case "json":
		data, err = output.ToJSON(nb, cfg.Inspect.Pretty)
	case "sources":
		data, err = output.SourcesToJSON(nb, cfg.Inspect.Pretty)
	case "yaml":
		data, err = output.ToYAML(nb)
	default:
		return fmt.Errorf("unsupported format: %s", cfg.Inspect.Format)
	}
	if err != nil {
		return err
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// runWatch inspects once, then again after every change until interrupted.
// Inspection errors are reported and watching continues.
func runWatch(parent context.Context, path string, cfg *config.Config, logger *zap.Logger, inspectOnce func() error, stderr io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(path, cfg.Inspect.WatchDebounce, logger)
	if err != nil {
		return err
	}
	// Register before the first inspection so saves made while it runs
	// are not missed.
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Close()

	report := func() {
		if err := inspectOnce(); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
		}
	}

	report()
	return w.Run(ctx, report)
}
