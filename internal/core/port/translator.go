package port

import "context"

// Translator translates a block of text between the configured language
// pair. Implementations enforce the backend's per-call character ceiling via
// text.SplitBlocks; empty input short-circuits to empty output without a
// backend call. Backend failures surface as ErrTranslationUnavailable.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
