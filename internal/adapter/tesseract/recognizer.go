package tesseract

import (
	"context"
	"strings"

	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"
)

// Recognizer extracts text from images through a local Tesseract
// installation. A fresh gosseract client is created per call: the client is
// cheap next to the recognition itself and per-call clients avoid sharing
// cgo state across requests.
type Recognizer struct {
	clientFactory func() *gosseract.Client
}

func NewRecognizer() *Recognizer {
	return &Recognizer{
		clientFactory: gosseract.NewClient,
	}
}

// Extract implements port.TextRecognizer. An empty result means no text was
// detected, which is a valid outcome.
func (r *Recognizer) Extract(ctx context.Context, image []byte, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", errors.Wrap(err, "could not load image")
	}

	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return "", errors.Wrapf(err, "could not set ocr language '%s'", lang)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", errors.Wrap(port.ErrRecognizerUnavailable, err.Error())
	}

	return strings.TrimSpace(text), nil
}

// Available implements port.TextRecognizer. Tesseract is considered usable
// when it reports at least one installed language pack.
func (r *Recognizer) Available() bool {
	langs, err := gosseract.GetAvailableLanguages()
	return err == nil && len(langs) > 0
}

var _ port.TextRecognizer = &Recognizer{}
