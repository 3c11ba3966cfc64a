package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeArtifact persists lines as <outputDir>/<media>.enriched.json with
// full fidelity to non-ASCII text, creating outputDir when absent.
func writeArtifact(outputDir, media string, lines []Line) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("enrich: create output dir %q: %w", outputDir, err)
	}

	outPath := filepath.Join(outputDir, media+".enriched.json")
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("enrich: create %q: %w", outPath, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lines); err != nil {
		return "", fmt.Errorf("enrich: encode %q: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("enrich: close %q: %w", outPath, err)
	}
	return outPath, nil
}
