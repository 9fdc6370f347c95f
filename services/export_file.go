package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const exportFilePrefix = "Electrical_Estimate"

// ExportFilename builds the download name of an exported artifact:
// Electrical_Estimate_<number>_<unix millis>.<ext>. The timestamp keeps
// repeated exports of the same estimate from overwriting each other.
func ExportFilename(number string, ts time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%d.%s", exportFilePrefix, SanitizeFilename(number), ts.UnixMilli(), ext)
}

// SanitizeFilename removes characters that are unsafe for filenames.
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// SaveExport writes data to dir/name. The content goes to a temporary file
// first and is renamed into place only once fully written, so a failed export
// never leaves a partial file under the final name.
func SaveExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".estimate-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close export: %w", err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("save export: %w", err)
	}
	return final, nil
}
