package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/SeverinAlexB/craprs/internal/covtool"
	"github.com/SeverinAlexB/craprs/internal/output"
	"github.com/SeverinAlexB/craprs/internal/scanner"
	"github.com/SeverinAlexB/craprs/pkg/analyzer/coverage"
	"github.com/SeverinAlexB/craprs/pkg/analyzer/crap"
)

func crapCmd() *cli.Command {
	return &cli.Command{
		Name:      "crap",
		Usage:     "Run coverage and score every function (the default command)",
		ArgsUsage: "[module filter...]",
		Flags: append(projectFlags(),
			&cli.StringFlag{
				Name:  "coverage-tool",
				Value: "tarpaulin",
				Usage: "Coverage tool: tarpaulin or llvm-cov",
			},
			&cli.BoolFlag{
				Name:  "skip-coverage",
				Usage: "Skip coverage generation, use existing lcov.info",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Value: 30,
				Usage: "CRAP score warning threshold",
			},
		),
		Action: runCrapCmd,
	}
}

// projectFlags are shared by the crap and functions commands.
func projectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project-dir",
			Aliases: []string{"C"},
			Usage:   "Project directory (where Cargo.toml lives)",
		},
		&cli.StringFlag{
			Name:  "src",
			Value: "src",
			Usage: "Source directory (relative to project dir)",
		},
	}
}

func runCrapCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if dir := c.String("project-dir"); dir != "" {
		if err := covtool.EnterProject(dir); err != nil {
			return err
		}
	}

	toolName := cfg.Coverage.Tool
	if c.IsSet("coverage-tool") || toolName == "" {
		toolName = c.String("coverage-tool")
	}
	tool, err := covtool.ParseTool(toolName)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if !c.Bool("skip-coverage") && !cfg.Coverage.Skip {
		covtool.RemoveStale()
		if err := covtool.Run(ctx, tool); err != nil {
			return err
		}
	}

	lcovContent, err := os.ReadFile(covtool.LCOVFile)
	if err != nil {
		return fmt.Errorf("failed to read %s (did the coverage run succeed?): %w", covtool.LCOVFile, err)
	}
	fileCov := coverage.ParseLCOV(string(lcovContent))

	srcDir := cfg.Source.Dir
	if c.IsSet("src") || srcDir == "" {
		srcDir = c.String("src")
	}

	files, err := scanner.New(cfg).ScanDir(srcDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", srcDir, err)
	}
	files = scanner.FilterSources(files, c.Args().Slice())

	if len(files) == 0 {
		color.Yellow("No Rust source files found under %s", srcDir)
		return nil
	}

	results, procErrs := extractAll(ctx, cfg, files)
	reportFileErrors(procErrs)

	var entries []crap.Entry
	for _, fr := range results {
		modulePath := coverage.SourceToModulePath(fr.Path, srcDir)
		lineCov := coverage.FindFileCoverage(fr.Path, fileCov)

		for _, fn := range fr.Functions {
			cov := coverage.ForRange(lineCov, int(fn.StartLine), int(fn.EndLine))
			entries = append(entries, crap.Entry{
				Name:       fn.Name,
				ModulePath: modulePath,
				Complexity: fn.Complexity,
				Coverage:   cov,
				Crap:       crap.Score(fn.Complexity, cov),
			})
		}
	}

	crap.SortEntries(entries)
	report := crap.Report{
		Entries: entries,
		Summary: crap.Summarize(entries),
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	threshold := c.Float64("threshold")
	var rows [][]string
	var warnings []string
	for _, e := range report.Entries {
		score := fmt.Sprintf("%.1f", e.Crap)
		if e.Crap > threshold {
			score = color.RedString("%.1f", e.Crap)
			warnings = append(warnings, fmt.Sprintf("%s (%s) - CRAP %.1f exceeds threshold %.1f",
				e.Name, e.ModulePath, e.Crap, threshold))
		}
		rows = append(rows, []string{
			e.Name,
			e.ModulePath,
			fmt.Sprintf("%d", e.Complexity),
			fmt.Sprintf("%.1f%%", e.Coverage),
			score,
		})
	}

	table := output.NewTable(
		"CRAP Report",
		[]string{"Function", "Module", "CC", "Cov%", "CRAP"},
		rows,
		[]string{
			fmt.Sprintf("Functions: %d", report.Summary.TotalFunctions),
			fmt.Sprintf("Mean: %.1f", report.Summary.MeanScore),
			fmt.Sprintf("P90: %.1f", report.Summary.P90Score),
			fmt.Sprintf("Max: %.1f", report.Summary.MaxScore),
		},
		report,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(warnings) > 0 && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Warnings (%d):", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}
