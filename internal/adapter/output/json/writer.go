// Package json serializes review payloads to disk so a publish step or
// an operator can inspect exactly what would be sent.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bkyoung/linegate/internal/domain"
)

// Writer persists review payloads as indented JSON files.
type Writer struct {
	now func() string
}

// NewWriter creates a JSON writer with a timestamp supplier.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists a payload artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact domain.PayloadArtifact) (string, error) {
	outputDir := filepath.Join(artifact.OutputDir, fmt.Sprintf("%s_%s", sanitise(artifact.Repository), shortSHA(artifact.CommitSHA)), w.now())
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filePath := filepath.Join(outputDir, "review-payload.json")

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create json file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(artifact.Payload); err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	return filePath, nil
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
