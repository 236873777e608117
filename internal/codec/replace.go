package codec

import "regexp"

// LargestMatchReplace replaces the longest non-overlapping match of re in
// text with repl, leaving every other match untouched. Ties go to the
// earliest match. repl is inserted literally. Empty matches are ignored, so
// text is returned unchanged when re only matches the empty string.
func LargestMatchReplace(text string, re *regexp.Regexp, repl string) string {
	start, end := -1, -1
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[1]-loc[0] > end-start {
			start, end = loc[0], loc[1]
		}
	}
	if start < 0 || end == start {
		return text
	}
	return text[:start] + repl + text[end:]
}
