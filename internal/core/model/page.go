package model

import "time"

type PageID int64

// Page is one captured unit of content owned by exactly one Extraction.
// Number defines display and export order within the extraction; numbers are
// assigned highest-plus-one on insert and rewritten to a dense 1..N sequence
// on explicit reorder.
type Page struct {
	ID             PageID
	ExtractionID   ExtractionID
	Number         int
	OriginalText   string
	TranslatedText string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Body returns the text used when exporting the page: the translation when
// present, the OCR original otherwise.
func (p *Page) Body() string {
	if p.TranslatedText != "" {
		return p.TranslatedText
	}
	return p.OriginalText
}
