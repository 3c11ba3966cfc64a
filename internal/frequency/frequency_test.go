package frequency

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrWong99/zimu/internal/enrich"
)

func TestEligible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want bool
	}{
		{"你好", true},
		{"中", true},
		{"你好3", true},
		{"123", false},
		{"hello", false},
		{"", false},
		{"３", false},
		{"。", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			if got := Eligible(tt.word); got != tt.want {
				t.Errorf("Eligible(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestScores_Empty(t *testing.T) {
	t.Parallel()

	scores := Scores(Table{})
	if len(scores) != 0 {
		t.Errorf("Scores(empty) = %v, want empty", scores)
	}
}

func TestScores_SingleWord(t *testing.T) {
	t.Parallel()

	scores := Scores(Table{"你好": 42})
	if scores["你好"] != 1 {
		t.Errorf("single-word score = %d, want 1 (cumulative share is 1.0)", scores["你好"])
	}
}

func TestScores_Distribution(t *testing.T) {
	t.Parallel()

	// Counts sum to 100; cumulative shares land exactly on each breakpoint.
	table := Table{
		"的": 60,
		"是": 20,
		"在": 10,
		"有": 7,
		"鲜": 3,
	}
	scores := Scores(table)

	want := map[string]int{"的": 5, "是": 4, "在": 3, "有": 2, "鲜": 1}
	for word, wantScore := range want {
		if scores[word] != wantScore {
			t.Errorf("score[%q] = %d, want %d", word, scores[word], wantScore)
		}
	}
}

func TestScores_Monotonic(t *testing.T) {
	t.Parallel()

	table := Table{
		"一": 100, "二": 50, "三": 25, "四": 12, "五": 6,
		"六": 3, "七": 2, "八": 1,
	}
	scores := Scores(table)

	// A strictly higher count never maps to a strictly lower score.
	for a, ca := range table {
		for b, cb := range table {
			if ca > cb && scores[a] < scores[b] {
				t.Errorf("count(%q)=%d > count(%q)=%d but score %d < %d",
					a, ca, b, cb, scores[a], scores[b])
			}
		}
	}
}

func TestScores_DeterministicTieBreak(t *testing.T) {
	t.Parallel()

	// All counts equal; repeated runs must yield identical assignments.
	table := Table{"甲": 10, "乙": 10, "丙": 10, "丁": 10}
	first := Scores(table)
	for i := 0; i < 20; i++ {
		if got := Scores(table); len(got) != len(first) {
			t.Fatalf("run %d: size %d, want %d", i, len(got), len(first))
		} else {
			for w, s := range first {
				if got[w] != s {
					t.Fatalf("run %d: score[%q] = %d, want %d", i, w, got[w], s)
				}
			}
		}
	}
}

func TestScores_ZeroTotal(t *testing.T) {
	t.Parallel()

	scores := Scores(Table{"你": 0, "好": 0})
	for w, s := range scores {
		if s != 1 {
			t.Errorf("score[%q] = %d, want 1 for all-zero table", w, s)
		}
	}
	if len(scores) != 2 {
		t.Errorf("len(scores) = %d, want 2", len(scores))
	}
}

func writeArtifact(t *testing.T, dir, name string, lines []enrich.Line) {
	t.Helper()
	data, err := json.Marshal(lines)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func segmented(words ...string) []enrich.WordReading {
	out := make([]enrich.WordReading, 0, len(words))
	for _, w := range words {
		out = append(out, enrich.WordReading{Word: w})
	}
	return out
}

func TestBuild_CountsAcrossArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeArtifact(t, dir, "a.enriched.json", []enrich.Line{
		{Text: "x", Segmented: segmented("你好", "你好", "世界")},
		{Text: "y", Segmented: segmented("你好", "123", "hello")},
	})
	writeArtifact(t, dir, "b.enriched.json", []enrich.Line{
		{Text: "z", Segmented: segmented("你好", "你好", "世界")},
	})

	table, err := Build(dir)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table["你好"] != 5 {
		t.Errorf("count[你好] = %d, want 5", table["你好"])
	}
	if table["世界"] != 2 {
		t.Errorf("count[世界] = %d, want 2", table["世界"])
	}
	if _, ok := table["123"]; ok {
		t.Error("all-digit token counted")
	}
	if _, ok := table["hello"]; ok {
		t.Error("non-Han token counted")
	}
}

func TestBuild_SkipsMalformedArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeArtifact(t, dir, "good.enriched.json", []enrich.Line{
		{Text: "x", Segmented: segmented("你好")},
	})
	if err := os.WriteFile(filepath.Join(dir, "bad.enriched.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "unrelated.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Build(dir)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table["你好"] != 1 {
		t.Errorf("count[你好] = %d, want 1", table["你好"])
	}
}

func TestBuild_MissingDir(t *testing.T) {
	t.Parallel()

	if _, err := Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Build() error = nil, want error for missing corpus dir")
	}
}

func TestBuild_RebuildsFromScratch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeArtifact(t, dir, "a.enriched.json", []enrich.Line{
		{Text: "x", Segmented: segmented("你好")},
	})

	first, err := Build(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(dir)
	if err != nil {
		t.Fatal(err)
	}
	if first["你好"] != second["你好"] {
		t.Errorf("rebuild changed counts: %d vs %d", first["你好"], second["你好"])
	}
}

func TestCaches_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	table := Table{"你好": 5, "世界": 2}
	scores := Scores(table)

	if err := SaveCaches(dir, table, scores); err != nil {
		t.Fatalf("SaveCaches() error = %v", err)
	}

	gotTable, gotScores, err := LoadCaches(dir)
	if err != nil {
		t.Fatalf("LoadCaches() error = %v", err)
	}
	if len(gotTable) != len(table) || gotTable["你好"] != 5 {
		t.Errorf("loaded table = %v, want %v", gotTable, table)
	}
	if len(gotScores) != len(scores) {
		t.Errorf("loaded scores = %v, want %v", gotScores, scores)
	}
}

func TestCaches_LoadMissing(t *testing.T) {
	t.Parallel()

	if _, _, err := LoadCaches(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("LoadCaches() error = nil, want error")
	}
}

func TestCaches_PreservesNonASCII(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := SaveCaches(dir, Table{"你好": 1}, ScoreTable{"你好": 1}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "word_frequency.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "你好") {
		t.Errorf("cache file escapes non-ASCII: %s", data)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	table := Table{"的": 60, "是": 20, "在": 10, "有": 7, "鲜": 3}
	scores := Scores(table)

	var sb strings.Builder
	Report(&sb, table, scores)
	out := sb.String()

	if !strings.Contains(out, "Unique words: 5") {
		t.Errorf("report missing unique word count:\n%s", out)
	}
	if !strings.Contains(out, "Total occurrences: 100") {
		t.Errorf("report missing total occurrences:\n%s", out)
	}
	for _, word := range []string{"的", "鲜"} {
		if !strings.Contains(out, word) {
			t.Errorf("report missing word %q:\n%s", word, out)
		}
	}
}

func TestReport_Empty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	Report(&sb, Table{}, ScoreTable{})
	if !strings.Contains(sb.String(), "Unique words: 0") {
		t.Errorf("empty report malformed:\n%s", sb.String())
	}
}
