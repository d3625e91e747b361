package jsondb

import (
	"time"

	"github.com/aldemarvin/extractor/internal/core/model"
)

// database is the full persisted state: two named record collections plus
// the identifier counters. It serializes to a single indented JSON document
// so the store file stays inspectable with a text editor.
type database struct {
	LastExtractionID int64              `json:"last_extraction_id"`
	LastPageID       int64              `json:"last_page_id"`
	Extractions      []extractionRecord `json:"extractions"`
	Pages            []pageRecord       `json:"pages"`
}

type extractionRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	DocType   string    `json:"doc_type"`
	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pageRecord struct {
	ID             int64     `json:"id"`
	ExtractionID   int64     `json:"extraction_id"`
	Number         int       `json:"page_number"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *extractionRecord) toModel() *model.Extraction {
	return &model.Extraction{
		ID:        model.ExtractionID(r.ID),
		Name:      r.Name,
		Version:   r.Version,
		DocType:   r.DocType,
		PageCount: r.PageCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *pageRecord) toModel() *model.Page {
	return &model.Page{
		ID:             model.PageID(r.ID),
		ExtractionID:   model.ExtractionID(r.ExtractionID),
		Number:         r.Number,
		OriginalText:   r.OriginalText,
		TranslatedText: r.TranslatedText,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
