// Package pinyin implements the phonetic annotator that attaches tone-marked
// romanised readings to segmented Chinese words.
package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Annotator converts Chinese words to tone-marked pinyin. It is read-only
// after construction and safe for concurrent use.
type Annotator struct {
	args gopinyin.Args
}

// New returns an Annotator producing tone-marked readings (nǐ hǎo).
// Non-Han runes pass through unchanged so mixed tokens like "你好3" keep
// their non-Chinese characters.
func New() *Annotator {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	args.Fallback = func(r rune, _ gopinyin.Args) []string {
		return []string{string(r)}
	}
	return &Annotator{args: args}
}

// Transcribe returns the pinyin reading of word, one syllable per character,
// space separated. Deterministic; never fails — unknown runes are passed
// through verbatim.
func (a *Annotator) Transcribe(word string) string {
	return strings.Join(gopinyin.LazyPinyin(word, a.args), " ")
}
