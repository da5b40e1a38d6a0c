package pdf

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

type pdfcpuCodec struct{}

// NewPDFCPUCodec returns a Codec backed by pdfcpu. Sources are parsed and
// validated in relaxed mode, then their pages are copied onto the running
// document as each one is appended. The outline is written on serialization.
func NewPDFCPUCodec() Codec {
	disableConfigDir.Do(api.DisableConfigDir)
	return pdfcpuCodec{}
}

func (pdfcpuCodec) NewDocument() Document {
	return &pdfcpuDocument{}
}

// pdfcpu mutates the configuration it is handed, so every call gets its own.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// pdfcpuDocument holds the serialized pages merged so far.
type pdfcpuDocument struct {
	merged   []byte
	pages    int
	outline  []Bookmark
	finished bool
}

func (d *pdfcpuDocument) Append(name string, data []byte) (int, error) {
	if d.finished {
		return 0, ErrAlreadyFinished
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("validate %s: %w", name, err)
	}
	if ctx.PageCount == 0 {
		return 0, ErrEmptySource
	}

	merged, err := appendPages(d.merged, data)
	if err != nil {
		return 0, fmt.Errorf("copy pages of %s: %w", name, err)
	}

	d.merged = merged
	d.pages += ctx.PageCount
	return ctx.PageCount, nil
}

// appendPages copies every page of src onto the end of dst. A nil dst
// starts a new document from src.
func appendPages(dst, src []byte) ([]byte, error) {
	readers := []io.ReadSeeker{bytes.NewReader(src)}
	if dst != nil {
		readers = []io.ReadSeeker{bytes.NewReader(dst), bytes.NewReader(src)}
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (d *pdfcpuDocument) PageCount() int {
	return d.pages
}

func (d *pdfcpuDocument) SetOutline(bookmarks []Bookmark) {
	d.outline = bookmarks
}

func (d *pdfcpuDocument) Bytes() ([]byte, error) {
	if d.finished {
		return nil, ErrAlreadyFinished
	}
	d.finished = true

	if d.merged == nil {
		return nil, ErrNoValidContent
	}
	if len(d.outline) == 0 {
		return d.merged, nil
	}

	var out bytes.Buffer
	bms := outlineBookmarks(d.outline, d.pages)
	if err := api.AddBookmarks(bytes.NewReader(d.merged), &out, bms, true, newConfiguration()); err != nil {
		return nil, fmt.Errorf("write outline: %w", err)
	}
	return out.Bytes(), nil
}

// outlineBookmarks converts 0-based entries to pdfcpu's 1-based page
// ranges. Each range runs until the page before the next entry starts.
func outlineBookmarks(outline []Bookmark, pageCount int) []pdfcpu.Bookmark {
	bms := make([]pdfcpu.Bookmark, len(outline))
	for i, b := range outline {
		thru := pageCount
		if i+1 < len(outline) {
			thru = outline[i+1].PageNumber
		}
		bms[i] = pdfcpu.Bookmark{
			Title:    b.Title,
			PageFrom: b.PageNumber + 1,
			PageThru: thru,
		}
	}
	return bms
}
