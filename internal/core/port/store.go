package port

import (
	"context"

	"github.com/aldemarvin/extractor/internal/core/model"
)

// Store is the sole owner of the extraction and page collections. Values
// returned by a Store are snapshots: mutating them does not affect stored
// state until an explicit update call.
type Store interface {
	// CreateExtraction inserts a new extraction with zero pages. It fails
	// with ErrDuplicateExtraction when the (name, version, docType) triple
	// already exists.
	CreateExtraction(ctx context.Context, name string, version string, docType string) (model.ExtractionID, error)
	ExtractionExists(ctx context.Context, name string, version string, docType string) (bool, error)
	GetExtraction(ctx context.Context, id model.ExtractionID) (*model.Extraction, error)
	// QueryExtractions returns all extractions ordered by creation time,
	// most recent first.
	QueryExtractions(ctx context.Context) ([]*model.Extraction, error)
	UpdateExtraction(ctx context.Context, id model.ExtractionID, updates ExtractionUpdates) (*model.Extraction, error)
	// DeleteExtraction removes the extraction and every page it owns.
	DeleteExtraction(ctx context.Context, id model.ExtractionID) error

	// AddPage inserts a page with the given number and bumps the owner's
	// page count.
	AddPage(ctx context.Context, extractionID model.ExtractionID, number int, originalText string, translatedText string) (model.PageID, error)
	GetPage(ctx context.Context, id model.PageID) (*model.Page, error)
	// GetPages returns the extraction's pages ordered by page number.
	GetPages(ctx context.Context, extractionID model.ExtractionID) ([]*model.Page, error)
	UpdatePage(ctx context.Context, id model.PageID, updates PageUpdates) (*model.Page, error)
	// DeletePage removes a single page and decrements the owner's page
	// count, floored at zero. Surviving pages keep their numbers.
	DeletePage(ctx context.Context, id model.PageID) error

	// ReorderPages assigns page numbers 1..N following the given order,
	// which must be a permutation of the extraction's page identifiers.
	ReorderPages(ctx context.Context, extractionID model.ExtractionID, order []model.PageID) error
	// NextPageNumber returns 1 for an empty extraction, max(number)+1
	// otherwise.
	NextPageNumber(ctx context.Context, extractionID model.ExtractionID) (int, error)

	Close() error
}

// ExtractionUpdates is an explicit partial update: nil fields are left
// untouched.
type ExtractionUpdates struct {
	Name    *string
	Version *string
	DocType *string
}

// PageUpdates is an explicit partial update: nil fields are left untouched.
type PageUpdates struct {
	OriginalText   *string
	TranslatedText *string
}
