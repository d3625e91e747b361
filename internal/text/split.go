package text

import "strings"

// SplitBlocks splits text into blocks of at most maxChars characters without
// breaking paragraphs. Paragraphs are accumulated greedily, joined by a line
// break, and a block is closed as soon as appending the next paragraph would
// exceed the limit. A single paragraph longer than maxChars is passed through
// as its own block, never force-split.
func SplitBlocks(text string, maxChars int) []string {
	paragraphs := strings.Split(text, "\n")
	blocks := make([]string, 0)

	var current strings.Builder

	for _, paragraph := range paragraphs {
		if current.Len()+len(paragraph)+1 >= maxChars {
			if block := strings.TrimSpace(current.String()); block != "" {
				blocks = append(blocks, block)
			}
			current.Reset()
			current.WriteString(paragraph)
			continue
		}

		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(paragraph)
	}

	if block := strings.TrimSpace(current.String()); block != "" {
		blocks = append(blocks, block)
	}

	return blocks
}
