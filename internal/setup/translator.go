package setup

import (
	"context"

	genaiAdapter "github.com/aldemarvin/extractor/internal/adapter/genai"
	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/aldemarvin/extractor/internal/translation"
	"github.com/bornholm/genai/llm"
	"github.com/pkg/errors"

	"github.com/bornholm/genai/llm/provider"
	_ "github.com/bornholm/genai/llm/provider/openai"
)

var getLLMClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (llm.Client, error) {
	client, err := provider.Create(ctx, provider.WithConfig(&provider.Config{
		Provider:            provider.Name(conf.Translation.Provider.Name),
		BaseURL:             conf.Translation.Provider.BaseURL,
		Key:                 conf.Translation.Provider.Key,
		ChatCompletionModel: conf.Translation.Provider.ChatCompletionModel,
	}))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return client, nil
})

var getTranslatorFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Translator, error) {
	client, err := getLLMClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var translator port.Translator = genaiAdapter.NewTranslator(
		client,
		conf.Translation.Source,
		conf.Translation.Target,
		genaiAdapter.WithTranslatorMaxChars(conf.Translation.MaxChars),
	)

	if conf.Translation.MinInterval > 0 {
		translator = translation.NewRateLimitedTranslator(translator, conf.Translation.MinInterval)
	}

	if conf.Translation.MaxRetries > 0 {
		translator = translation.NewRetryTranslator(translator, conf.Translation.BaseBackoff, conf.Translation.MaxRetries)
	}

	return translation.NewLoggerTranslator(translator), nil
})
