package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/bornholm/go-x/slogx"
)

type LoggerTranslator struct {
	translator port.Translator
}

func NewLoggerTranslator(translator port.Translator) *LoggerTranslator {
	return &LoggerTranslator{
		translator: translator,
	}
}

// Translate implements [port.Translator].
func (t *LoggerTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx = slogx.WithAttrs(ctx, slog.Int("input_chars", len(text)))

	before := time.Now()
	defer func() {
		slog.DebugContext(ctx, "translation request completed", slog.Duration("duration", time.Since(before)))
	}()

	slog.DebugContext(ctx, "translation request started")

	return t.translator.Translate(ctx, text)
}

var _ port.Translator = &LoggerTranslator{}
