// Package validation checks command-line inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/poultry-ledger/internal/fileutils"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// StatementExtensions are the input file types the parser reads.
var StatementExtensions = []string{".pdf", ".txt"}

// IsValidPath checks if a given path exists and is a regular file or directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	// Check if it's a file or directory
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidStatementFile checks that path is an existing PDF or text statement.
// Failures are *parsererror.ValidationError.
func IsValidStatementFile(path string) error {
	if path == "" {
		return &parsererror.ValidationError{Reason: "input file is required"}
	}
	if err := IsValidPath(path); err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: err.Error()}
	}
	if !fileutils.FileExists(path) {
		return &parsererror.ValidationError{FilePath: path, Reason: "input is a directory, expected a file"}
	}
	if !fileutils.HasExtension(path, StatementExtensions...) {
		return &parsererror.ValidationError{
			FilePath: path,
			Reason:   "unsupported input file: expected one of " + strings.Join(StatementExtensions, ", "),
		}
	}
	return nil
}

// IsValidInputDirectory checks that dir exists and is a directory.
func IsValidInputDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("input directory is required")
	}
	if err := IsValidPath(dir); err != nil {
		return err
	}
	if !fileutils.DirectoryExists(dir) {
		return fmt.Errorf("input is a file, expected a directory: %s", dir)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "xlsx", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'xlsx', 'csv'", format)
	}
}

// IsValidFilePermissions checks that a file is not writable or readable by others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 { // Check if 'others' have any permissions
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0644", mode.String())
	}
	return nil
}
