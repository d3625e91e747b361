package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
)

// Renderer produces the exported document with pdfcpu. Sections are mapped
// onto pdfcpu's JSON page description, one page per section, and handed to
// the create API; all layout beyond that mapping is pdfcpu's business.
type Renderer struct {
	conf *model.Configuration
}

func NewRenderer() *Renderer {
	return &Renderer{
		conf: model.NewDefaultConfiguration(),
	}
}

type fontPrimitive struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type textPrimitive struct {
	Value    string         `json:"value"`
	Anchor   string         `json:"anchor,omitempty"`
	Position []float64      `json:"pos,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Font     *fontPrimitive `json:"font,omitempty"`
}

type contentPrimitive struct {
	Text []textPrimitive `json:"text"`
}

type pagePrimitive struct {
	Content contentPrimitive `json:"content"`
}

type createDocument struct {
	Paper  string                   `json:"paper,omitempty"`
	Origin string                   `json:"origin,omitempty"`
	Pages  map[string]pagePrimitive `json:"pages"`
}

// Render implements port.DocumentRenderer.
func (r *Renderer) Render(ctx context.Context, doc port.ExportDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	pages := make(map[string]pagePrimitive, len(doc.Sections))

	for i, section := range doc.Sections {
		pages[strconv.Itoa(i+1)] = renderSection(section)
	}

	description, err := json.Marshal(createDocument{
		Paper:  "A4",
		Origin: "upperLeft",
		Pages:  pages,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(description), &out, r.conf); err != nil {
		return nil, errors.Wrap(err, "could not render document")
	}

	return out.Bytes(), nil
}

func renderSection(section port.ExportSection) pagePrimitive {
	if section.Cover {
		return pagePrimitive{
			Content: contentPrimitive{
				Text: []textPrimitive{
					{
						Value:  section.Heading,
						Anchor: "center",
						Font:   &fontPrimitive{Name: "Helvetica-Bold", Size: 28},
					},
					{
						Value:    section.Body,
						Position: []float64{0, 60},
						Anchor:   "bottomcenter",
						Font:     &fontPrimitive{Name: "Helvetica", Size: 12},
					},
				},
			},
		}
	}

	return pagePrimitive{
		Content: contentPrimitive{
			Text: []textPrimitive{
				{
					Value:    section.Heading,
					Position: []float64{-40, 40},
					Anchor:   "topright",
					Font:     &fontPrimitive{Name: "Helvetica-Bold", Size: 10},
				},
				{
					Value:    section.Body,
					Position: []float64{40, 80},
					Width:    515,
					Font:     &fontPrimitive{Name: "Helvetica", Size: 11},
				},
			},
		},
	}
}

var _ port.DocumentRenderer = &Renderer{}
