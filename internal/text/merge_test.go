package text

import "testing"

func TestMergeBilingual(t *testing.T) {
	type testCase struct {
		Name       string
		Original   string
		Translated string
		Expected   string
	}

	testCases := []testCase{
		{
			Name:       "both empty",
			Original:   "",
			Translated: "",
			Expected:   "",
		},
		{
			Name:       "pairs with blank separators",
			Original:   "Hello\nWorld",
			Translated: "Olá\nMundo",
			Expected:   "Olá\nHello\n\nMundo\nWorld",
		},
		{
			Name:       "translation has more lines",
			Original:   "Hello",
			Translated: "Olá\nMundo",
			Expected:   "Olá\nHello\n\nMundo",
		},
		{
			Name:       "original has more lines",
			Original:   "Hello\nWorld",
			Translated: "Olá",
			Expected:   "Olá\nHello\n\nWorld",
		},
		{
			Name:       "blank lines are dropped before pairing",
			Original:   "Hello\n\n\nWorld",
			Translated: "Olá\n\nMundo",
			Expected:   "Olá\nHello\n\nMundo\nWorld",
		},
		{
			Name:       "only translation",
			Original:   "",
			Translated: "Olá",
			Expected:   "Olá",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			if e, g := tc.Expected, MergeBilingual(tc.Original, tc.Translated); e != g {
				t.Errorf("merged: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestSanitizeForExport(t *testing.T) {
	type testCase struct {
		Input    string
		Expected string
	}

	testCases := []testCase{
		{Input: `He said "hi" #1`, Expected: "He said hi 1"},
		{Input: "plain text stays intact", Expected: "plain text stays intact"},
		{Input: `|#*@{}'"`, Expected: ""},
		{Input: "a*b|c{d}e", Expected: "abcde"},
		{Input: "", Expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.Input, func(t *testing.T) {
			if e, g := tc.Expected, SanitizeForExport(tc.Input); e != g {
				t.Errorf("sanitized: expected '%v', got '%v'", e, g)
			}
		})
	}
}
