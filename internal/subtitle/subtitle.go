// Package subtitle adapts timed-caption files into the ordered cue sequence
// consumed by the enrichment pipeline.
//
// Timed formats (.srt and friends) are parsed by go-astisub; the pipeline
// itself never touches the file syntax. Plain-text sources (.txt) are
// accepted too: each non-empty line becomes one untimed cue.
package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

// Cue is one timed caption entry. Produced here, immutable downstream.
type Cue struct {
	// Start is the offset of the cue from the beginning of the media.
	Start time.Duration

	// End is the offset at which the cue leaves the screen. End >= Start is
	// assumed from the source file but not enforced here.
	End time.Duration

	// Text is the raw caption text with surrounding whitespace trimmed.
	// Multi-line captions are joined with newlines.
	Text string
}

// ReadFile parses the subtitle or plain-text file at path into cues.
func ReadFile(path string) ([]Cue, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return readPlainText(path)
	}
	return readTimed(path)
}

// readTimed parses a timed-caption file (format detected from the extension).
func readTimed(path string) ([]Cue, error) {
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("subtitle: parse %q: %w", path, err)
	}

	cues := make([]Cue, 0, len(subs.Items))
	for _, item := range subs.Items {
		var lines []string
		for _, line := range item.Lines {
			var sb strings.Builder
			for _, li := range line.Items {
				sb.WriteString(li.Text)
			}
			lines = append(lines, sb.String())
		}
		cues = append(cues, Cue{
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  strings.TrimSpace(strings.Join(lines, "\n")),
		})
	}
	return cues, nil
}

// readPlainText turns each non-empty line of a .txt file into an untimed cue.
func readPlainText(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("subtitle: open %q: %w", path, err)
	}
	defer f.Close()

	var cues []Cue
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		cues = append(cues, Cue{Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("subtitle: read %q: %w", path, err)
	}
	return cues, nil
}
