package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"csweep/internal/analyzer"
	"csweep/internal/config"
	"csweep/internal/parser"
	"csweep/internal/pipeline"
	"csweep/internal/reporter"
	"csweep/internal/scanner"
	"csweep/internal/storage"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	store  *storage.Store
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr, store: storage.New()}

	return &cli.Command{
		Name:      "csweep",
		Usage:     "Insert free() after the last use of dynamically allocated C variables",
		Version:   version,
		ArgsUsage: "<source_file.c>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML config file (default " + config.DefaultFile + " if present)",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		// `csweep file.c` is shorthand for `csweep run file.c`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				return a.runAction(ctx, cmd)
			}
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Analyze, augment and compile a C file",
				ArgsUsage: "<source_file.c>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Executable name",
					},
					&cli.StringFlag{
						Name:  "compiler",
						Usage: "C compiler command",
					},
					&cli.BoolFlag{
						Name:  "keep",
						Usage: "Keep the mapping and generated source",
					},
				},
				Action: a.runAction,
			},
			{
				Name:      "analyze",
				Usage:     "Write the variable to last-use mapping",
				ArgsUsage: "<source_file.c>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mapping",
						Aliases: []string{"m"},
						Usage:   "Mapping file to write",
					},
					formatFlag(),
				},
				Action: a.analyzeAction,
			},
			{
				Name:      "augment",
				Usage:     "Insert free() calls using an existing mapping",
				ArgsUsage: "<mapping_file> <source_file.c>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Prefix of the generated file name",
					},
				},
				Action: a.augmentAction,
			},
			{
				Name:      "check",
				Usage:     "Report allocation hygiene warnings for C files",
				ArgsUsage: "<path> [paths...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "exclude",
						Usage: "Comma-separated list of directories to exclude (e.g., vendor,build)",
					},
					formatFlag(),
				},
				Action: a.checkAction,
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Finding format: text, console, json or yaml",
	}
}

func (a *app) loadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx, a.store, cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("compiler") {
		cfg.Compiler = cmd.String("compiler")
	}
	if cmd.IsSet("keep") {
		cfg.KeepIntermediates = cmd.Bool("keep")
	}
	if cmd.IsSet("mapping") {
		cfg.MappingFile = cmd.String("mapping")
	}
	if cmd.IsSet("prefix") {
		cfg.Prefix = cmd.String("prefix")
	}
	if cmd.IsSet("exclude") {
		cfg.Exclude = splitList(cmd.String("exclude"))
	}
	return cfg, nil
}

func (a *app) newReporter(cmd *cli.Command, fallback reporter.Format) (*reporter.Reporter, error) {
	format := fallback
	if cmd.IsSet("format") {
		f, err := reporter.ParseFormat(cmd.String("format"))
		if err != nil {
			return nil, err
		}
		format = f
	}
	return reporter.NewReporter(a.stdout, format, a.colorEnabled(cmd)), nil
}

func (a *app) colorEnabled(cmd *cli.Command) bool {
	f, ok := a.stdout.(*os.File)
	return ok && reporter.ColorEnabled(f, cmd.Bool("no-color"))
}

func (a *app) pipeline(ctx context.Context, cmd *cli.Command) (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := a.loadConfig(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}
	rep, err := a.newReporter(cmd, reporter.FormatText)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(cfg, a.store, rep, a.stdout, a.stderr), cfg, nil
}

func (a *app) runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: csweep [run] <source_file.c>")
	}
	p, _, err := a.pipeline(ctx, cmd)
	if err != nil {
		return err
	}
	return p.Run(ctx, cmd.Args().First())
}

func (a *app) analyzeAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: csweep analyze [-m mapping] <source_file.c>")
	}
	p, cfg, err := a.pipeline(ctx, cmd)
	if err != nil {
		return err
	}
	_, err = p.Analyze(ctx, cmd.Args().First(), cfg.MappingFile)
	return err
}

func (a *app) augmentAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("usage: csweep augment <mapping_file> <source_file.c>")
	}
	p, _, err := a.pipeline(ctx, cmd)
	if err != nil {
		return err
	}
	_, err = p.Augment(ctx, cmd.Args().Get(0), cmd.Args().Get(1), 0)
	return err
}

func (a *app) checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("usage: csweep check [--exclude dirs] <path> [paths...]")
	}
	cfg, err := a.loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	rep, err := a.newReporter(cmd, reporter.FormatConsole)
	if err != nil {
		return err
	}

	files, err := scanner.NewScanner(cfg.Exclude).ScanPaths(cmd.Args().Slice())
	if err != nil {
		return fmt.Errorf("scanning paths: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(a.stderr, "No C files found")
		return nil
	}

	var findings []parser.Finding
	an := analyzer.NewAnalyzer(a.store)
	for _, file := range files {
		result, err := an.AnalyzeFile(ctx, file)
		if err != nil {
			findings = append(findings, parser.Finding{
				File:     file,
				Kind:     parser.KindInputUnreadable,
				Reason:   err.Error(),
				Severity: "warning",
			})
			continue
		}
		findings = append(findings, result.Findings...)
	}
	return rep.Report(findings)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
