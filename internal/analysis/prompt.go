package analysis

import "fmt"

// promptTemplate frames the per-line analysis task. The media name gives the
// model viewing context; the closing contract pins the response to a JSON
// object with exactly three fields and no trailing separators.
const promptTemplate = `You are processing Chinese subtitles from the movie %q.

This is the subtitle line to analyze:
%s

Please follow these steps:

1. Provide a natural English translation of the sentence.
2. Break down the sentence, word by word (no phrases), giving each word's
meaning **in this context** and its grammatical role if relevant.
3. Please also provide an explanation of any tricky grammar structures,
vocabulary, idiomatic / cultural phrases. Focus on things that would trip up
an intermediate learner. If the sentence is very simple, keep the explanation
very short.

Return valid JSON (no trailing commas):
{
  "translation": "...",
  "words": [{"word": "...", "meaning": "..."}],
  "explanation": "..."
}`

// BuildPrompt constructs the analysis request for one subtitle line.
// Pure and deterministic; mediaName may be empty.
func BuildPrompt(cueText, mediaName string) string {
	return fmt.Sprintf(promptTemplate, mediaName, cueText)
}
