package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SeverinAlexB/craprs/pkg/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("fn f() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.rs"))
	writeFile(t, filepath.Join(root, "foo", "bar.rs"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	files, err := New(config.Default()).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("found %d files, want 2: %v", len(files), files)
	}
	// Sorted for stable report order.
	if filepath.Base(files[0]) != "bar.rs" || filepath.Base(files[1]) != "main.rs" {
		t.Errorf("files = %v, want sorted [bar.rs main.rs]", files)
	}
}

func TestScanDirMissingRoot(t *testing.T) {
	files, err := New(nil).ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing root should not error, got %v", err)
	}
	if files != nil {
		t.Errorf("files = %v, want nil", files)
	}
}

func TestScanDirExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.rs"))
	writeFile(t, filepath.Join(root, "generated", "bindings.rs"))

	cfg := config.Default()
	cfg.Exclude.Patterns = []string{"generated"}
	cfg.Exclude.Gitignore = false

	files, err := New(cfg).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "main.rs" {
		t.Errorf("files = %v, want only main.rs", files)
	}
}

func TestFilterSources(t *testing.T) {
	files := []string{
		"src/main.rs",
		"src/parser/lexer.rs",
		"src/parser/ast.rs",
		"src/output.rs",
	}

	t.Run("no filter keeps everything", func(t *testing.T) {
		if got := FilterSources(files, nil); len(got) != len(files) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("single fragment", func(t *testing.T) {
		got := FilterSources(files, []string{"parser"})
		if len(got) != 2 {
			t.Fatalf("got %v, want the two parser files", got)
		}
	})

	t.Run("multiple fragments", func(t *testing.T) {
		got := FilterSources(files, []string{"main", "output"})
		if len(got) != 2 {
			t.Fatalf("got %v, want main.rs and output.rs", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := FilterSources(files, []string{"zzz"}); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}
