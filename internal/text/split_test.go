package text

import (
	"strings"
	"testing"
)

func TestSplitBlocks(t *testing.T) {
	type testCase struct {
		Name           string
		Text           string
		MaxChars       int
		ExpectedBlocks []string
	}

	testCases := []testCase{
		{
			Name:           "empty input",
			Text:           "",
			MaxChars:       100,
			ExpectedBlocks: []string{},
		},
		{
			Name:           "single short paragraph",
			Text:           "Hello world",
			MaxChars:       100,
			ExpectedBlocks: []string{"Hello world"},
		},
		{
			Name:           "each line on its own block",
			Text:           "A\nB\nC",
			MaxChars:       3,
			ExpectedBlocks: []string{"A", "B", "C"},
		},
		{
			Name:           "paragraphs accumulate under the limit",
			Text:           "one\ntwo\nthree",
			MaxChars:       100,
			ExpectedBlocks: []string{"one\ntwo\nthree"},
		},
		{
			Name:           "oversized paragraph passes through whole",
			Text:           "short\n" + strings.Repeat("x", 50) + "\nshort again",
			MaxChars:       20,
			ExpectedBlocks: []string{"short", strings.Repeat("x", 50), "short again"},
		},
		{
			Name:           "blank lines are not emitted as blocks",
			Text:           "\n\n",
			MaxChars:       10,
			ExpectedBlocks: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			blocks := SplitBlocks(tc.Text, tc.MaxChars)

			if e, g := len(tc.ExpectedBlocks), len(blocks); e != g {
				t.Fatalf("len(blocks): expected '%d', got '%d' (%q)", e, g, blocks)
			}

			for i := range blocks {
				if e, g := tc.ExpectedBlocks[i], blocks[i]; e != g {
					t.Errorf("blocks[%d]: expected '%v', got '%v'", i, e, g)
				}
			}
		})
	}
}

func TestSplitBlocksPreservesParagraphOrder(t *testing.T) {
	input := "alpha\nbravo\ncharlie\ndelta\necho"

	blocks := SplitBlocks(input, 14)

	joined := strings.Join(blocks, "\n")
	if e, g := input, joined; e != g {
		t.Errorf("reassembled text: expected '%v', got '%v'", e, g)
	}

	for i, block := range blocks {
		if len(block) > 14 && strings.Contains(block, "\n") {
			t.Errorf("blocks[%d] exceeds limit with multiple paragraphs: %q", i, block)
		}
	}
}
