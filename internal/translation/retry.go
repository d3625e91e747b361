package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pkg/errors"
)

// RetryTranslator retries transient backend failures with exponential
// backoff. Anything that is not ErrTranslationUnavailable fails immediately.
type RetryTranslator struct {
	baseDelay  time.Duration
	maxRetries int
	translator port.Translator
}

func NewRetryTranslator(translator port.Translator, baseDelay time.Duration, maxRetries int) *RetryTranslator {
	return &RetryTranslator{
		baseDelay:  baseDelay,
		maxRetries: maxRetries,
		translator: translator,
	}
}

// Translate implements [port.Translator].
func (t *RetryTranslator) Translate(ctx context.Context, text string) (string, error) {
	backoff := t.baseDelay
	retries := 0

	for {
		translated, err := t.translator.Translate(ctx, text)
		if err != nil {
			if retries >= t.maxRetries {
				return "", errors.WithStack(err)
			}

			if errors.Is(err, port.ErrTranslationUnavailable) {
				slog.DebugContext(ctx, "translation failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++

				select {
				case <-ctx.Done():
					return "", errors.WithStack(ctx.Err())
				case <-time.After(backoff):
				}

				backoff *= 2
				continue
			}

			return "", errors.WithStack(err)
		}

		return translated, nil
	}
}

var _ port.Translator = &RetryTranslator{}
