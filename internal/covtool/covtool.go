// Package covtool drives the external cargo coverage tools that produce the
// lcov.info tracefile this tool scores against.
package covtool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LCOVFile is the tracefile both supported tools are asked to write.
const LCOVFile = "lcov.info"

// Tool selects the coverage generator.
type Tool string

const (
	Tarpaulin Tool = "tarpaulin"
	LLVMCov   Tool = "llvm-cov"
)

// ParseTool validates a --coverage-tool flag value.
func ParseTool(s string) (Tool, error) {
	switch Tool(strings.ToLower(s)) {
	case Tarpaulin:
		return Tarpaulin, nil
	case LLVMCov:
		return LLVMCov, nil
	default:
		return "", fmt.Errorf("unknown coverage tool %q (want tarpaulin or llvm-cov)", s)
	}
}

// command returns the cargo invocation for the tool.
func (t Tool) command() (string, []string) {
	switch t {
	case LLVMCov:
		return "cargo", []string{"llvm-cov", "--lcov", "--output-path", LCOVFile}
	default:
		return "cargo", []string{"tarpaulin", "--out", "lcov"}
	}
}

// Run executes the coverage tool in the current directory, streaming its
// output through. A non-zero exit is an error carrying the exit code.
func Run(ctx context.Context, t Tool) error {
	program, args := t.command()

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("coverage command failed (exit %d)", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s %s: %w", program, strings.Join(args, " "), err)
	}
	return nil
}

// RemoveStale deletes a leftover tracefile so a failed coverage run cannot
// silently score against old data.
func RemoveStale() {
	_ = os.Remove(LCOVFile)
}

// EnterProject changes into the project directory and verifies a Cargo.toml
// is present, hinting at the parent directory when the manifest lives one
// level up (a common mistake when pointing at src/).
func EnterProject(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to cd into %s: %w", dir, err)
	}

	if _, err := os.Stat("Cargo.toml"); err == nil {
		return nil
	}

	if _, err := os.Stat(filepath.Join("..", "Cargo.toml")); err == nil {
		return fmt.Errorf("no Cargo.toml in %s, did you mean %s?", dir, filepath.Dir(dir))
	}
	return fmt.Errorf("no Cargo.toml found in %s", dir)
}
