package text

import "strings"

// Characters known to corrupt the export renderer's markup or encoding.
const forbiddenExportChars = `|#*@{}'"`

// SanitizeForExport strips characters that break the document renderer. The
// transform is lossy and irreversible.
func SanitizeForExport(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenExportChars, r) {
			return -1
		}
		return r
	}, text)
}
