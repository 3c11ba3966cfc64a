// Package frequency builds the corpus-wide word-frequency model from
// enriched subtitle artifacts and maps occurrence counts to a 1–5 difficulty
// score via cumulative-share binning.
package frequency

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/MrWong99/zimu/internal/enrich"
)

// artifactSuffix selects enriched outputs inside the corpus directory.
const artifactSuffix = ".enriched.json"

// Table maps a word to its occurrence count across the corpus.
type Table map[string]int

// ScoreTable maps a word to its difficulty score: 5 for the most frequent
// tier down to 1 for the rarest.
type ScoreTable map[string]int

// Eligible reports whether word counts toward the frequency corpus: it must
// contain at least one Han character and must not consist entirely of
// digits. Mixed tokens like "你好3" qualify; "123" does not.
func Eligible(word string) bool {
	if word == "" {
		return false
	}
	hasHan := false
	allDigits := true
	for _, r := range word {
		if unicode.Is(unicode.Han, r) {
			hasHan = true
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	return hasHan && !allDigits
}

// Build scans every enriched artifact in corpusDir and counts eligible
// segmented words. The table is rebuilt wholesale — never merged with a
// prior run. Unreadable or malformed artifacts are skipped with a
// diagnostic; only a missing corpus directory is fatal.
func Build(corpusDir string) (Table, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("frequency: read corpus dir %q: %w", corpusDir, err)
	}

	table := make(Table)
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), artifactSuffix) {
			continue
		}
		path := filepath.Join(corpusDir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable artifact", "path", path, "err", err)
			continue
		}
		var lines []enrich.Line
		if err := json.Unmarshal(data, &lines); err != nil {
			slog.Warn("skipping malformed artifact", "path", path, "err", err)
			continue
		}

		for _, line := range lines {
			for _, seg := range line.Segmented {
				if Eligible(seg.Word) {
					table[seg.Word]++
				}
			}
		}
		files++
	}

	slog.Info("frequency corpus built", "files", files, "unique_words", len(table))
	return table, nil
}
