package setup

import (
	"context"
	"log/slog"

	"github.com/aldemarvin/extractor/internal/adapter/tesseract"
	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/port"
)

var getRecognizerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.TextRecognizer, error) {
	recognizer := tesseract.NewRecognizer()

	if !recognizer.Available() {
		slog.WarnContext(ctx, "tesseract not available, captures will fail until it is installed")
	}

	return recognizer, nil
})
