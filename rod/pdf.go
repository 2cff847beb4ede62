package rod

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/sammelband/sammelband"
)

// DefaultRenderTimeout bounds a single PDF rendering.
const DefaultRenderTimeout = 60 * time.Second

// Ensure PDFRenderer implements sammelband.PDFRenderer at compile time.
var _ sammelband.PDFRenderer = (*PDFRenderer)(nil)

// PDFRenderer prints HTML documents to PDF in a blank browser tab.
type PDFRenderer struct {
	manager *BrowserManager
	timeout time.Duration
}

// NewPDFRenderer creates a PDFRenderer using manager's browser.
func NewPDFRenderer(manager *BrowserManager) *PDFRenderer {
	return &PDFRenderer{manager: manager, timeout: DefaultRenderTimeout}
}

// RenderPDF loads html into a new page and prints it with background colors
// and A4 paper.
func (r *PDFRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if r.manager.Closed() {
		return nil, sammelband.Errorf(sammelband.EINVALID, "renderer closed")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, err
	}
	defer page.Close()
	defer r.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, contextErr(ctx, fmt.Errorf("loading document: %w", err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, contextErr(ctx, err)
	}

	a4Width, a4Height := 8.27, 11.69
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &a4Width,
		PaperHeight:     &a4Height,
	})
	if err != nil {
		return nil, contextErr(ctx, fmt.Errorf("printing pdf: %w", err))
	}

	return io.ReadAll(stream)
}
