package port

import "context"

// TextRecognizer extracts text from an image. An empty result is a valid,
// expected outcome ("no text detected"), not an error.
type TextRecognizer interface {
	Extract(ctx context.Context, image []byte, lang string) (string, error)
	Available() bool
}
