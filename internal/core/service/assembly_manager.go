package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aldemarvin/extractor/internal/core/model"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/aldemarvin/extractor/internal/text"
	"github.com/bornholm/go-x/slogx"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type AssemblyManagerOptions struct {
	OCRLang string
}

type AssemblyManagerOptionFunc func(opts *AssemblyManagerOptions)

func WithAssemblyManagerOCRLang(lang string) AssemblyManagerOptionFunc {
	return func(opts *AssemblyManagerOptions) {
		opts.OCRLang = lang
	}
}

func NewAssemblyManagerOptions(funcs ...AssemblyManagerOptionFunc) *AssemblyManagerOptions {
	opts := &AssemblyManagerOptions{
		OCRLang: "eng",
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// AssemblyManager sequences store operations in response to user actions:
// create extraction, capture, translate, edit, reorder, export. It holds no
// state of its own; the store owns the collections and the collaborators are
// request/response calls.
type AssemblyManager struct {
	port.Store

	recognizer port.TextRecognizer
	translator port.Translator
	renderer   port.DocumentRenderer

	ocrLang string
}

func NewAssemblyManager(store port.Store, recognizer port.TextRecognizer, translator port.Translator, renderer port.DocumentRenderer, funcs ...AssemblyManagerOptionFunc) *AssemblyManager {
	opts := NewAssemblyManagerOptions(funcs...)
	return &AssemblyManager{
		Store:      store,
		recognizer: recognizer,
		translator: translator,
		renderer:   renderer,
		ocrLang:    opts.OCRLang,
	}
}

// CreateExtraction validates the required fields, checks for an existing
// triple to produce a friendly failure, then creates the record.
func (m *AssemblyManager) CreateExtraction(ctx context.Context, name string, version string, docType string) (*model.Extraction, error) {
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	docType = strings.TrimSpace(docType)

	if name == "" {
		return nil, errors.Wrap(port.ErrMissingField, "'name' is required")
	}
	if version == "" {
		return nil, errors.Wrap(port.ErrMissingField, "'version' is required")
	}
	if docType == "" {
		return nil, errors.Wrap(port.ErrMissingField, "'type' is required")
	}

	exists, err := m.Store.ExtractionExists(ctx, name, version, docType)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errors.Wrapf(port.ErrDuplicateExtraction, "an extraction named '%s' (version '%s', type '%s') already exists", name, version, docType)
	}

	id, err := m.Store.CreateExtraction(ctx, name, version, docType)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	extraction, err := m.Store.GetExtraction(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "extraction created", slog.Int64("extraction_id", int64(id)), slog.String("name", name))

	return extraction, nil
}

// CapturePage runs OCR on the captured image and commits the result as the
// extraction's next page. An empty OCR result is informational, not an
// error: the page is stored with empty original text so the user can retry
// or edit it later.
func (m *AssemblyManager) CapturePage(ctx context.Context, extractionID model.ExtractionID, image []byte) (*model.Page, error) {
	if len(image) == 0 {
		return nil, errors.Wrap(port.ErrNoContent, "no image available to extract from")
	}

	if !m.recognizer.Available() {
		return nil, errors.WithStack(port.ErrRecognizerUnavailable)
	}

	ctx = slogx.WithAttrs(ctx, slog.Int64("extraction_id", int64(extractionID)), slog.String("image_size", humanize.Bytes(uint64(len(image)))))

	original, err := m.recognizer.Extract(ctx, image, m.ocrLang)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if original == "" {
		slog.InfoContext(ctx, "no text detected in captured image")
	}

	number, err := m.Store.NextPageNumber(ctx, extractionID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	pageID, err := m.Store.AddPage(ctx, extractionID, number, original, "")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	page, err := m.Store.GetPage(ctx, pageID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "page captured", slog.Int64("page_id", int64(pageID)), slog.Int("page_number", number))

	return page, nil
}

// TranslatePage translates the page's original text and stores the result.
// The translator enforces the backend's per-call ceiling internally.
func (m *AssemblyManager) TranslatePage(ctx context.Context, pageID model.PageID) (*model.Page, error) {
	page, err := m.Store.GetPage(ctx, pageID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if strings.TrimSpace(page.OriginalText) == "" {
		return nil, errors.Wrap(port.ErrNoContent, "page has no text to translate")
	}

	ctx = slogx.WithAttrs(ctx, slog.Int64("page_id", int64(pageID)))

	translated, err := m.translator.Translate(ctx, page.OriginalText)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	updated, err := m.Store.UpdatePage(ctx, pageID, port.PageUpdates{TranslatedText: &translated})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "page translated", slog.Int("translated_chars", len(translated)))

	return updated, nil
}

// MergedPage returns the bilingual side-by-side view of a page.
func (m *AssemblyManager) MergedPage(ctx context.Context, pageID model.PageID) (string, error) {
	page, err := m.Store.GetPage(ctx, pageID)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return mergedView(page), nil
}

// BuildExport composes the renderer-ready document: a cover section first,
// then one section per page ordered by page number, each body the translated
// text when present or the original otherwise.
func BuildExport(title string, pages []*model.Page) port.ExportDocument {
	sections := make([]port.ExportSection, 0, len(pages)+1)

	sections = append(sections, port.ExportSection{
		Heading: title,
		Body:    fmt.Sprintf("Total pages: %d", len(pages)),
		Cover:   true,
	})

	for _, page := range pages {
		sections = append(sections, port.ExportSection{
			Heading: fmt.Sprintf("Page %d", page.Number),
			Body:    page.Body(),
		})
	}

	return port.ExportDocument{
		Title:    title,
		Sections: sections,
	}
}

// Export renders the extraction's pages into a binary document.
func (m *AssemblyManager) Export(ctx context.Context, extractionID model.ExtractionID) ([]byte, string, error) {
	extraction, err := m.Store.GetExtraction(ctx, extractionID)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	pages, err := m.Store.GetPages(ctx, extractionID)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	if len(pages) == 0 {
		return nil, "", errors.Wrapf(port.ErrNoContent, "extraction '%s' has no pages to export", extraction.Name)
	}

	doc := BuildExport(extraction.Name, pages)

	ctx = slogx.WithAttrs(ctx, slog.Int64("extraction_id", int64(extractionID)), slog.Int("sections", len(doc.Sections)))

	data, err := m.renderer.Render(ctx, doc)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	slog.InfoContext(ctx, "export rendered", slog.String("size", humanize.Bytes(uint64(len(data)))))

	return data, SafeFilename(extraction.Name) + ".pdf", nil
}

// OpenExport hands a rendered file to the platform-default viewer.
func (m *AssemblyManager) OpenExport(path string) error {
	return errors.WithStack(m.renderer.OpenExternally(path))
}

// SafeFilename keeps letters, digits, spaces, dashes and underscores;
// everything else becomes an underscore.
func SafeFilename(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, title)

	return strings.TrimSpace(mapped)
}

func mergedView(page *model.Page) string {
	if page.TranslatedText == "" {
		return page.OriginalText
	}
	return text.MergeBilingual(page.OriginalText, page.TranslatedText)
}
