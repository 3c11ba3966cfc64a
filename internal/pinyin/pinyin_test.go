package pinyin

import "testing"

func TestTranscribe(t *testing.T) {
	t.Parallel()

	a := New()

	tests := []struct {
		word string
		want string
	}{
		{"你好", "nǐ hǎo"},
		{"中", "zhōng"},
		{"你好3", "nǐ hǎo 3"},
		{"abc", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			if got := a.Transcribe(tt.word); got != tt.want {
				t.Errorf("Transcribe(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestTranscribe_Deterministic(t *testing.T) {
	t.Parallel()

	a := New()
	first := a.Transcribe("世界")
	for i := 0; i < 10; i++ {
		if got := a.Transcribe("世界"); got != first {
			t.Fatalf("Transcribe not deterministic: %q vs %q", got, first)
		}
	}
}
