package text

import "strings"

// MergeBilingual interleaves a translated text with its source, line by line,
// for side-by-side reading. For each index the translated line is emitted
// first, then the original line, then a blank separator. Alignment is
// positional and best-effort: sentence splitting differs between languages,
// so no semantic correspondence between the paired lines is guaranteed.
func MergeBilingual(original string, translated string) string {
	if original == "" && translated == "" {
		return ""
	}

	originalLines := nonEmptyLines(original)
	translatedLines := nonEmptyLines(translated)

	merged := make([]string, 0, (len(originalLines)+len(translatedLines))*2)

	for i := 0; i < max(len(originalLines), len(translatedLines)); i++ {
		if i < len(translatedLines) {
			merged = append(merged, translatedLines[i])
		}
		if i < len(originalLines) {
			merged = append(merged, originalLines[i])
		}
		merged = append(merged, "")
	}

	return strings.TrimSpace(strings.Join(merged, "\n"))
}

func nonEmptyLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
