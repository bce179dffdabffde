package fileproc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/SeverinAlexB/craprs/pkg/parser"
)

func writeRustFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMapFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeRustFile(t, dir, "a.rs", "fn a() {}"),
		writeRustFile(t, dir, "b.rs", "fn b() {}"),
		writeRustFile(t, dir, "c.rs", "fn c() {}"),
	}

	var progress atomic.Int32
	results, errs := MapFiles(context.Background(), files, func(psr *parser.Parser, path string) (string, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return "", err
		}
		defer result.Tree.Close()
		return filepath.Base(path), nil
	}, func() { progress.Add(1) })

	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if got := progress.Load(); got != 3 {
		t.Errorf("progress ticks = %d, want 3", got)
	}

	sort.Strings(results)
	want := []string{"a.rs", "b.rs", "c.rs"}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, results[i], want[i])
		}
	}
}

func TestMapFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeRustFile(t, dir, "good.rs", "fn ok() {}")
	bad := writeRustFile(t, dir, "bad.rs", "fn broken( {")

	results, errs := MapFiles(context.Background(), []string{good, bad}, func(psr *parser.Parser, path string) (string, error) {
		result, err := psr.ParseFile(path)
		if err != nil {
			return "", err
		}
		defer result.Tree.Close()
		return path, nil
	}, nil)

	if len(results) != 1 || results[0] != good {
		t.Errorf("results = %v, want only the good file", results)
	}
	if errs == nil || !errs.HasErrors() {
		t.Fatal("expected a processing error for the malformed file")
	}
	if len(errs.Errors) != 1 || errs.Errors[0].Path != bad {
		t.Errorf("errors = %v, want one error for %s", errs.Errors, bad)
	}
}

func TestMapFilesEmptyInput(t *testing.T) {
	results, errs := MapFiles(context.Background(), nil, func(psr *parser.Parser, path string) (int, error) {
		return 0, nil
	}, nil)

	if results != nil || errs != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", results, errs)
	}
}

func TestProcessingErrors(t *testing.T) {
	errs := &ProcessingErrors{}
	if errs.HasErrors() {
		t.Error("fresh collection should have no errors")
	}

	errs.Add("a.rs", errors.New("boom"))
	if !errs.HasErrors() {
		t.Error("expected HasErrors after Add")
	}
	if errs.Error() != "a.rs: boom" {
		t.Errorf("Error() = %q", errs.Error())
	}

	errs.Add("b.rs", errors.New("bang"))
	if got := errs.Error(); got != "2 files failed to process (first: a.rs: boom)" {
		t.Errorf("Error() = %q", got)
	}
}
