package frequency

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// topPerScore is how many example words each score tier shows in the report.
const topPerScore = 5

// Report writes a human-readable summary of the frequency model: overall
// totals, the most frequent words in each score tier, and the score
// distribution.
func Report(w io.Writer, counts Table, scores ScoreTable) {
	total := 0
	for _, c := range counts {
		total += c
	}
	fmt.Fprintf(w, "Unique words: %d\n", len(counts))
	fmt.Fprintf(w, "Total occurrences: %d\n\n", total)

	byScore := make(map[int][]string)
	for word, score := range scores {
		byScore[score] = append(byScore[score], word)
	}
	for _, words := range byScore {
		sort.Slice(words, func(i, j int) bool {
			if counts[words[i]] != counts[words[j]] {
				return counts[words[i]] > counts[words[j]]
			}
			return words[i] < words[j]
		})
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Top Words per Score")
	tw.AppendHeader(table.Row{"Score", "Word", "Count"})
	for score := 5; score >= 1; score-- {
		words := byScore[score]
		if len(words) > topPerScore {
			words = words[:topPerScore]
		}
		for _, word := range words {
			tw.AppendRow(table.Row{score, word, counts[word]})
		}
		if len(words) > 0 && score > 1 {
			tw.AppendSeparator()
		}
	}
	tw.Render()
	fmt.Fprintln(w)

	dw := table.NewWriter()
	dw.SetOutputMirror(w)
	dw.SetTitle("Score Distribution")
	dw.AppendHeader(table.Row{"Score", "Words", "Share"})
	for score := 5; score >= 1; score-- {
		n := len(byScore[score])
		share := 0.0
		if len(scores) > 0 {
			share = float64(n) / float64(len(scores)) * 100
		}
		dw.AppendRow(table.Row{score, n, fmt.Sprintf("%.1f%%", share)})
	}
	dw.Render()
}
