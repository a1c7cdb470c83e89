package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	"github.com/DavidAtikpo/irata-sub007/pkg/render"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/try"
)

// 1x1 png.
const pngDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func exampleDocument(t *testing.T) domain.Document {
	t.Helper()
	img := try.To(dataurl.Parse(pngDataURL)).OrFatal(t)
	return domain.Document{
		Id:   "doc-1",
		Kind: domain.KindDisclaimer,
		Fields: &domain.DisclaimerFields{
			Name:    "Marie Dupont",
			Address: "12 rue des Cordes, Lyon",
		},
		PrimarySignature: &domain.Signature{
			Image:    img,
			SignedAt: time.Date(2024, 4, 2, 10, 30, 0, 0, time.UTC),
		},
		Status: domain.StatusPending,
	}
}

func TestDocumentHTML(t *testing.T) {
	doc := exampleDocument(t)

	html := try.To(render.DocumentHTML(doc)).OrFatal(t)

	for _, want := range []string{
		"Décharge de responsabilité IRATA", // template title
		"Nom complet",                      // field label
		"Marie Dupont",                     // field value
		"12 rue des Cordes, Lyon",
		"02/04/2024",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page misses %q", want)
		}
	}

	// the signature image must survive verbatim, not URL-filtered away.
	if !strings.Contains(html, `src="`+pngDataURL+`"`) {
		t.Error("signature data URL is not embedded as-is")
	}
	if strings.Contains(html, "ZgotmplZ") {
		t.Error("signature data URL was neutered by the template engine")
	}
}

func TestRenderer(t *testing.T) {
	ctx := context.Background()

	t.Run("it serves a PDF when the engine succeeds", func(t *testing.T) {
		testee := render.New(render.EngineFunc(
			func(ctx context.Context, html string) ([]byte, error) {
				return []byte("%PDF-1.7 stub"), nil
			},
		))

		got := try.To(testee.Render(ctx, exampleDocument(t))).OrFatal(t)

		if got.Filename != "disclaimer-doc-1.pdf" {
			t.Errorf("unexpected filename: %s", got.Filename)
		}
		if got.ContentType != "application/pdf" {
			t.Errorf("unexpected content type: %s", got.ContentType)
		}
		if string(got.Body) != "%PDF-1.7 stub" {
			t.Errorf("unexpected body: %s", got.Body)
		}
	})

	t.Run("it degrades to HTML when the engine fails", func(t *testing.T) {
		testee := render.New(render.EngineFunc(
			func(ctx context.Context, html string) ([]byte, error) {
				return nil, errors.New("fake chrome crash")
			},
		))

		got := try.To(testee.Render(ctx, exampleDocument(t))).OrFatal(t)

		if got.Filename != "disclaimer-doc-1.html" {
			t.Errorf("unexpected filename: %s", got.Filename)
		}
		if got.ContentType != "text/html; charset=utf-8" {
			t.Errorf("unexpected content type: %s", got.ContentType)
		}
		if !strings.Contains(string(got.Body), "Marie Dupont") {
			t.Error("fallback page misses the document content")
		}
	})
}
