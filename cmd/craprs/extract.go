package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fatih/color"

	"github.com/SeverinAlexB/craprs/internal/cache"
	"github.com/SeverinAlexB/craprs/internal/fileproc"
	"github.com/SeverinAlexB/craprs/internal/progress"
	"github.com/SeverinAlexB/craprs/pkg/analyzer/complexity"
	"github.com/SeverinAlexB/craprs/pkg/config"
	"github.com/SeverinAlexB/craprs/pkg/parser"
)

// extractAll parses the files in parallel and extracts their functions,
// consulting the content-addressed cache first. Files that fail to parse are
// reported and dropped without affecting the rest.
func extractAll(ctx context.Context, cfg *config.Config, files []string) ([]complexity.FileResult, *fileproc.ProcessingErrors) {
	cch, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		// A broken cache dir only costs speed.
		cch, _ = cache.New("", 0, false)
	}

	tracker := progress.NewTracker("Extracting functions...", len(files))
	defer tracker.FinishSuccess()

	return fileproc.MapFiles(ctx, files, func(psr *parser.Parser, path string) (complexity.FileResult, error) {
		source, err := os.ReadFile(path)
		if err != nil {
			return complexity.FileResult{}, err
		}

		hash := cache.HashBytes(source)
		if data, ok := cch.Get(path, hash); ok {
			var cached complexity.FileResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}

		result, err := psr.Parse(source, path)
		if err != nil {
			return complexity.FileResult{}, err
		}
		defer result.Tree.Close()

		fr := complexity.FileResult{
			Path:      path,
			Functions: complexity.Extract(result),
		}

		if data, err := json.Marshal(fr); err == nil {
			_ = cch.Set(path, hash, data)
		}

		return fr, nil
	}, tracker.Tick)
}

// reportFileErrors prints per-file failures as warnings. A file that is not
// valid Rust yields no functions at all, but its siblings still do.
func reportFileErrors(errs *fileproc.ProcessingErrors) {
	if errs == nil || !errs.HasErrors() {
		return
	}

	color.Yellow("Skipped %d file(s):", len(errs.Errors))
	for _, e := range errs.Errors {
		color.Yellow("  - %v", e)
	}
}
