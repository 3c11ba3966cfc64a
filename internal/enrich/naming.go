package enrich

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	leadingMarker  = regexp.MustCompile(`^▶\s*`)
	plexFallback   = regexp.MustCompile(`(?i)^Plex.*$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	cjkOrFullwidth = regexp.MustCompile(`[\x{4e00}-\x{9fff}\x{3000}-\x{303f}\x{ff00}-\x{ffef}]`)
	specialChars   = regexp.MustCompile(`[—'&,’]`)

	// Known subtitle/text suffixes, most specific first.
	knownSuffixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\.chi\.srt$`),
		regexp.MustCompile(`(?i)\.srt$`),
		regexp.MustCompile(`(?i)\.txt$`),
	}
)

// NormalizeTitle normalises a media title for use in file names.
//
// It trims whitespace, drops a leading ▶ marker and fallback "Plex…" titles,
// turns colons into " -", collapses whitespace runs to underscores, replaces
// CJK ideographs and fullwidth punctuation with dots, removes hash symbols,
// and maps a handful of separator characters to underscores.
//
//	NormalizeTitle("▶ My Movie: The Sequel") == "My_Movie_-_The_Sequel"
//	NormalizeTitle("你好世界") == "...."
func NormalizeTitle(title string) string {
	result := strings.TrimSpace(title)
	result = leadingMarker.ReplaceAllString(result, "")
	result = plexFallback.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, ":", " -")
	result = whitespaceRun.ReplaceAllString(result, "_")
	result = cjkOrFullwidth.ReplaceAllString(result, ".")
	result = strings.ReplaceAll(result, "#", "")
	result = specialChars.ReplaceAllString(result, "_")
	return result
}

// MediaNameFromPath derives the normalised media name from a source file
// path by stripping known subtitle/text suffixes and applying
// [NormalizeTitle]. Distinct inputs may normalise to the same name; the
// directory runner detects and reports such collisions.
func MediaNameFromPath(path string) string {
	name := filepath.Base(path)
	for _, re := range knownSuffixes {
		name = re.ReplaceAllString(name, "")
	}
	return NormalizeTitle(strings.TrimSpace(name))
}
