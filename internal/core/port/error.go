package port

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateExtraction    = errors.New("duplicate extraction")
	ErrMissingField           = errors.New("missing required field")
	ErrNoContent              = errors.New("no content")
	ErrRecognizerUnavailable  = errors.New("text recognizer unavailable")
	ErrTranslationUnavailable = errors.New("translation backend unavailable")
)
