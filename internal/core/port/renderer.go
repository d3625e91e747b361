package port

import "context"

// ExportSection is one renderer-ready section of an export document: the
// cover first, then one section per page in display order.
type ExportSection struct {
	Heading string
	Body    string
	Cover   bool
}

// ExportDocument is the ordered, renderer-ready representation of an
// extraction's pages.
type ExportDocument struct {
	Title    string
	Sections []ExportSection
}

// DocumentRenderer turns an export document into a binary artifact. The
// core prepares sections only; layout, pagination and fonts belong to the
// renderer.
type DocumentRenderer interface {
	Render(ctx context.Context, doc ExportDocument) ([]byte, error)
	OpenExternally(path string) error
}
