package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Paper sizes in inches
const (
	TabloidWidth  = 11.0
	TabloidHeight = 17.0
	A4Width       = 8.27
	A4Height      = 11.69
)

// PDFPrinter turns an HTML document into a PDF
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html []byte, widthIn, heightIn float64) ([]byte, error)
}

// ChromePrinter prints through a headless Chrome driven by chromedp
type ChromePrinter struct {
	chromePath string
	timeout    time.Duration
}

// Ensure ChromePrinter implements PDFPrinter
var _ PDFPrinter = (*ChromePrinter)(nil)

// NewChromePrinter creates a ChromePrinter. An empty chromePath probes the usual install locations.
func NewChromePrinter(chromePath string) *ChromePrinter {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromePrinter{chromePath: chromePath, timeout: 30 * time.Second}
}

// detectChromePath checks common Chrome/Chromium installation paths
func detectChromePath() string {
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// waitForImages resolves once every <img> has loaded or failed
const waitForImages = `Promise.all([
	document.fonts.ready,
	...Array.from(document.images).map(img => img.complete ? Promise.resolve() : new Promise(resolve => {
		img.onload = resolve;
		img.onerror = resolve;
	}))
]).then(() => true)`

// PrintPDF loads html into a blank tab and prints it with zero margins on a widthIn x heightIn sheet
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte, widthIn, heightIn float64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	start := time.Now()
	var pdfBuf []byte
	var loaded bool
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForImages, &loaded, func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
			return params.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(widthIn).
				WithPaperHeight(heightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Ctx(ctx).Debug().Dur("elapsed", time.Since(start)).Int("bytes", len(pdfBuf)).Msg("📄 PDF printed")
	return pdfBuf, nil
}
