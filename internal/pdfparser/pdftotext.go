package pdfparser

import (
	"bytes"
	"fmt"
	"os/exec"

	"fjacquet/poultry-ledger/internal/models"
	"fjacquet/poultry-ledger/internal/parsererror"
)

// PdftotextExtractor runs the poppler pdftotext command in layout mode.
type PdftotextExtractor struct {
	// Command is the executable to run; defaults to "pdftotext".
	Command string
}

// NewPdftotextExtractor creates a PdftotextExtractor using pdftotext from PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Command: "pdftotext"}
}

// Name returns "pdftotext".
func (e *PdftotextExtractor) Name() string {
	return "pdftotext"
}

// ExtractLines runs `pdftotext -layout <path> -` and splits stdout into lines.
func (e *PdftotextExtractor) ExtractLines(path string) ([]models.RawLine, error) {
	command := e.Command
	if command == "" {
		command = "pdftotext"
	}
	bin, err := exec.LookPath(command)
	if err != nil {
		return nil, &parsererror.DataExtractionError{
			FilePath:  path,
			Extractor: e.Name(),
			Reason:    fmt.Sprintf("%s not found", command),
			Err:       parsererror.ErrExtractorUnavailable,
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, "-layout", path, "-") // #nosec G204 -- arguments are a file path, not shell input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &parsererror.DataExtractionError{
			FilePath:  path,
			Extractor: e.Name(),
			Reason:    fmt.Sprintf("command failed: %s", bytes.TrimSpace(stderr.Bytes())),
			Err:       err,
		}
	}

	// pdftotext separates pages with form feeds.
	lines := SplitLines(string(bytes.ReplaceAll(stdout.Bytes(), []byte("\f"), []byte("\n"))))
	if !hasText(lines) {
		return nil, &parsererror.DataExtractionError{
			FilePath: path, Extractor: e.Name(), Reason: "no text extracted", Err: parsererror.ErrNoText,
		}
	}
	return lines, nil
}
