// Package pdf prints HTML pages to PDF with headless Chrome.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrPDFDisabled is returned when no PDF renderer is configured.
var ErrPDFDisabled = errors.New("pdf rendering disabled")

// Renderer converts a complete HTML document to PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// New returns the renderer named by kind ("chromedp"); anything else is Disabled.
func New(kind, execPath string) Renderer {
	if strings.EqualFold(strings.TrimSpace(kind), "chromedp") {
		return &ChromeRenderer{ExecPath: execPath}
	}
	return Disabled{}
}

// Disabled always fails with ErrPDFDisabled.
type Disabled struct{}

// RenderHTMLToPDF implements Renderer.
func (Disabled) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return nil, ErrPDFDisabled
}

const defaultTimeout = 60 * time.Second

// ChromeRenderer drives a headless Chrome through chromedp.
type ChromeRenderer struct {
	ExecPath string
	Timeout  time.Duration
}

// RenderHTMLToPDF writes html to a temp file, loads it and prints an A4 PDF.
func (r *ChromeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	runCtx, cancelRun := context.WithTimeout(cctx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-print-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches.
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print: %w", err)
	}
	return buf, nil
}
