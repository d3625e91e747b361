package genai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/aldemarvin/extractor/internal/text"
	"github.com/bornholm/genai/llm"
	"github.com/bornholm/genai/llm/prompt"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// Per-request character ceiling of the translation backend; longer texts are
// split on paragraph boundaries before being sent.
const DefaultMaxChars = 4500

const translatePromptTemplate = `
You are a professional translator. Translate the following text from {{ .Source }} to {{ .Target }}.
Preserve the paragraph structure. Do not output anything but the translated text.

## Text

{{ .Text }}
`

type TranslatorOptions struct {
	MaxChars int
}

type TranslatorOptionFunc func(opts *TranslatorOptions)

func WithTranslatorMaxChars(maxChars int) TranslatorOptionFunc {
	return func(opts *TranslatorOptions) {
		opts.MaxChars = maxChars
	}
}

func NewTranslatorOptions(funcs ...TranslatorOptionFunc) *TranslatorOptions {
	opts := &TranslatorOptions{
		MaxChars: DefaultMaxChars,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// Translator translates text through the configured LLM provider. Each
// block is sanitized for export before being returned, so downstream
// consumers never see renderer-hostile characters.
type Translator struct {
	client   llm.Client
	source   string
	target   string
	maxChars int
}

func NewTranslator(client llm.Client, source string, target string, funcs ...TranslatorOptionFunc) *Translator {
	opts := NewTranslatorOptions(funcs...)
	return &Translator{
		client:   client,
		source:   source,
		target:   target,
		maxChars: opts.MaxChars,
	}
}

// Translate implements port.Translator.
func (t *Translator) Translate(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	source := t.source
	if source == "auto" {
		info := whatlanggo.Detect(input)
		source = whatlanggo.LangToString(info.Lang)
		ctx = slogx.WithAttrs(ctx, slog.String("detected_lang", source))
	}

	blocks := text.SplitBlocks(input, t.maxChars)

	translated := make([]string, 0, len(blocks))
	for i, block := range blocks {
		slog.DebugContext(ctx, "translating block", slog.Int("block", i+1), slog.Int("blocks", len(blocks)), slog.Int("chars", len(block)))

		result, err := t.translateBlock(ctx, source, block)
		if err != nil {
			return "", errors.WithStack(err)
		}

		translated = append(translated, text.SanitizeForExport(result))
	}

	return strings.Join(translated, "\n"), nil
}

func (t *Translator) translateBlock(ctx context.Context, source string, block string) (string, error) {
	userPrompt, err := prompt.Template(translatePromptTemplate, struct {
		Source string
		Target string
		Text   string
	}{
		Source: source,
		Target: t.target,
		Text:   block,
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	res, err := t.client.ChatCompletion(ctx,
		llm.WithMessages(
			llm.NewMessage(llm.RoleUser, userPrompt),
		),
		llm.WithTemperature(0.2),
	)
	if err != nil {
		return "", errors.Wrap(port.ErrTranslationUnavailable, err.Error())
	}

	return strings.TrimSpace(res.Message().Content()), nil
}

var _ port.Translator = &Translator{}
