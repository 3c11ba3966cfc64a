package frequency

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	tableFile  = "word_frequency.json"
	scoresFile = "word_scores.json"
)

// SaveCaches persists the frequency table and score table into cacheDir,
// creating the directory when absent. Both files are written even when the
// tables are empty so a later stats run always has something to load.
func SaveCaches(cacheDir string, table Table, scores ScoreTable) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("frequency: create cache dir %q: %w", cacheDir, err)
	}
	if err := writeJSON(filepath.Join(cacheDir, tableFile), table); err != nil {
		return err
	}
	return writeJSON(filepath.Join(cacheDir, scoresFile), scores)
}

// LoadCaches reads a previously saved frequency table and score table from
// cacheDir.
func LoadCaches(cacheDir string) (Table, ScoreTable, error) {
	var table Table
	if err := readJSON(filepath.Join(cacheDir, tableFile), &table); err != nil {
		return nil, nil, err
	}
	var scores ScoreTable
	if err := readJSON(filepath.Join(cacheDir, scoresFile), &scores); err != nil {
		return nil, nil, err
	}
	return table, scores, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frequency: create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("frequency: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("frequency: close %q: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("frequency: read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("frequency: decode %q: %w", path, err)
	}
	return nil
}
