package render

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromeEngine prints HTML to PDF through a headless Chrome.
type chromeEngine struct {
	execPath string
	timeout  time.Duration
}

// NewChromeEngine creates an Engine running the Chrome binary at execPath.
// Empty execPath lets chromedp look the browser up on PATH.
func NewChromeEngine(execPath string, timeout time.Duration) *chromeEngine {
	return &chromeEngine{execPath: execPath, timeout: timeout}
}

var _ Engine = &chromeEngine{}

func (e *chromeEngine) PrintToPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if e.execPath != "" {
		opts = append(opts, chromedp.ExecPath(e.execPath))
	}
	actx, acancel := chromedp.NewExecAllocator(ctx, opts...)
	defer acancel()

	cctx, ccancel := chromedp.NewContext(actx)
	defer ccancel()

	var pdf []byte
	if err := chromedp.Run(
		cctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}
