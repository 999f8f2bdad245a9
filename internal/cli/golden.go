package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
)

// checkGolden compares report against the golden file at path, or rewrites
// the file when update is set. Reports are compared byte for byte.
func checkGolden(path string, update bool, report []byte, out *OutputFormatter) error {
	if update {
		if err := updateGoldenFile(path, report); err != nil {
			out.Error(ErrCodeGolden, err.Error())
			return WrapExitError(ExitCommandError, "failed to update golden file", err)
		}
		fmt.Fprintf(out.GetErrWriter(), "✓ golden file updated: %s\n", path)
		return nil
	}

	match, diff, err := compareWithGolden(path, report)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			out.Error(ErrCodeNotFound, fmt.Sprintf("golden file %s not found (run with --update to create it)", path))
			return WrapExitError(ExitCommandError, "golden file not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to read golden file", err)
	}
	if !match {
		out.Error(ErrCodeGolden, fmt.Sprintf("report differs from golden file %s (run with --update to regenerate)", path))
		out.VerboseLog("%s", diff)
		return NewExitError(ExitFailure, "report differs from golden file")
	}
	return nil
}

// updateGoldenFile writes the current report as the golden file.
func updateGoldenFile(path string, report []byte) error {
	// Ensure golden directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, report, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// compareWithGolden reports whether report equals the golden file, with a
// readable diff (-golden +report) when it does not.
func compareWithGolden(path string, report []byte) (bool, string, error) {
	golden, err := os.ReadFile(path)
	if err != nil {
		return false, "", err
	}
	if bytes.Equal(golden, report) {
		return true, "", nil
	}
	return false, cmp.Diff(string(golden), string(report)), nil
}
