package frequency

import "sort"

// Cumulative-share breakpoints. Walking words from most to least frequent,
// the running share of total occurrences selects the tier: the high-volume
// head of the distribution lands on score 5, the long tail on score 1.
const (
	shareScore5 = 0.60
	shareScore4 = 0.80
	shareScore3 = 0.90
	shareScore2 = 0.97
)

// Scores assigns each word in table a difficulty score in {1..5}.
//
// Entries are sorted by descending count; equal counts are ordered by
// ascending word so a given table always produces the same assignment.
// A word with a strictly higher count never receives a strictly lower score
// than one with a lower count. An empty table yields an empty ScoreTable.
func Scores(table Table) ScoreTable {
	scores := make(ScoreTable, len(table))
	if len(table) == 0 {
		return scores
	}

	type entry struct {
		word  string
		count int
	}
	sorted := make([]entry, 0, len(table))
	total := 0
	for word, count := range table {
		sorted = append(sorted, entry{word, count})
		total += count
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].word < sorted[j].word
	})

	if total == 0 {
		// Degenerate all-zero table: everything is maximally rare.
		for _, e := range sorted {
			scores[e.word] = 1
		}
		return scores
	}

	cumulative := 0
	for _, e := range sorted {
		cumulative += e.count
		ratio := float64(cumulative) / float64(total)
		switch {
		case ratio <= shareScore5:
			scores[e.word] = 5
		case ratio <= shareScore4:
			scores[e.word] = 4
		case ratio <= shareScore3:
			scores[e.word] = 3
		case ratio <= shareScore2:
			scores[e.word] = 2
		default:
			scores[e.word] = 1
		}
	}
	return scores
}
