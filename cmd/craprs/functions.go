package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/SeverinAlexB/craprs/internal/covtool"
	"github.com/SeverinAlexB/craprs/internal/output"
	"github.com/SeverinAlexB/craprs/internal/scanner"
)

func functionsCmd() *cli.Command {
	return &cli.Command{
		Name:      "functions",
		Aliases:   []string{"fn"},
		Usage:     "Extract functions with cyclomatic complexity, no coverage step",
		ArgsUsage: "[module filter...]",
		Flags:     projectFlags(),
		Action:    runFunctionsCmd,
	}
}

func runFunctionsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if dir := c.String("project-dir"); dir != "" {
		if err := covtool.EnterProject(dir); err != nil {
			return err
		}
	}

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

	ctx, stop := signalContext()
	defer stop()

	results, procErrs := extractAll(ctx, cfg, files)
	reportFileErrors(procErrs)

	// Parallel extraction returns files in arbitrary order.
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	var rows [][]string
	total := 0
	for _, fr := range results {
		for _, fn := range fr.Functions {
			rows = append(rows, []string{
				fn.Name,
				fr.Path,
				fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
				fmt.Sprintf("%d", fn.Complexity),
			})
			total++
		}
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Functions",
		[]string{"Function", "File", "Lines", "CC"},
		rows,
		[]string{fmt.Sprintf("Functions: %d", total)},
		results,
	)

	return formatter.Output(table)
}
