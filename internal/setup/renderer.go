package setup

import (
	"context"

	"github.com/aldemarvin/extractor/internal/adapter/pdf"
	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/port"
)

var getRendererFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.DocumentRenderer, error) {
	return pdf.NewRenderer(), nil
})
