package model

import "time"

type ExtractionID int64

// Extraction is one logical document being assembled page by page. The
// triple (Name, Version, DocType) is unique across the store, case-sensitive.
type Extraction struct {
	ID        ExtractionID
	Name      string
	Version   string
	DocType   string
	PageCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
