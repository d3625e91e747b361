package translation

import (
	"context"
	"time"

	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimitedTranslator enforces a minimum interval between backend calls so
// a long capture session does not hammer the translation provider.
type RateLimitedTranslator struct {
	limiter    *rate.Limiter
	translator port.Translator
}

func NewRateLimitedTranslator(translator port.Translator, minDelay time.Duration) *RateLimitedTranslator {
	return &RateLimitedTranslator{
		limiter:    rate.NewLimiter(rate.Every(minDelay), 1),
		translator: translator,
	}
}

// Translate implements [port.Translator].
func (t *RateLimitedTranslator) Translate(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", errors.WithStack(err)
	}

	return t.translator.Translate(ctx, text)
}

var _ port.Translator = &RateLimitedTranslator{}
