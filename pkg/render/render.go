// Package render turns documents into downloadable files.
//
// PDF is the nominal output. When the PDF engine is down or times out the
// renderer degrades to the HTML page itself rather than failing the
// download.
package render

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

// Engine prints a self-contained HTML page to PDF.
type Engine interface {
	PrintToPDF(ctx context.Context, html string) ([]byte, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, html string) ([]byte, error)

func (f EngineFunc) PrintToPDF(ctx context.Context, html string) ([]byte, error) {
	return f(ctx, html)
}

// Rendered is a file ready to be served as a download.
type Rendered struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Renderer struct {
	engine Engine
	logger *log.Logger
}

func New(engine Engine) *Renderer {
	return &Renderer{engine: engine, logger: log.New("render")}
}

// Render builds the document page and prints it to PDF.
//
// When printing fails the HTML page is returned instead, under an .html
// filename. It returns an error only when even the page cannot be built.
func (r *Renderer) Render(ctx context.Context, doc domain.Document, extraSignatures ...domain.Signature) (Rendered, error) {
	html, err := DocumentHTML(doc, extraSignatures...)
	if err != nil {
		return Rendered{}, err
	}

	base := fmt.Sprintf("%s-%s", doc.Kind, doc.Id)

	pdf, err := r.engine.PrintToPDF(ctx, html)
	if err != nil {
		r.logger.Warnf("pdf engine failed (falling back to html): document %s: %s", doc.Id, err)
		return Rendered{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(html),
		}, nil
	}

	return Rendered{
		Filename:    base + ".pdf",
		ContentType: "application/pdf",
		Body:        pdf,
	}, nil
}
