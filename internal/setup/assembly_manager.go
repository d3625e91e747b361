package setup

import (
	"context"

	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/service"
	"github.com/pkg/errors"
)

// NewAssemblyManagerFromConfig wires the store and the external
// collaborators into the workflow manager. The returned manager owns the
// store handle; callers release it with Close on shutdown.
func NewAssemblyManagerFromConfig(ctx context.Context, conf *config.Config) (*service.AssemblyManager, error) {
	return getAssemblyManagerFromConfig(ctx, conf)
}

var getAssemblyManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.AssemblyManager, error) {
	store, err := getStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	recognizer, err := getRecognizerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	translator, err := getTranslatorFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	renderer, err := getRendererFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service.NewAssemblyManager(
		store,
		recognizer,
		translator,
		renderer,
		service.WithAssemblyManagerOCRLang(conf.OCR.Lang),
	), nil
})
