package pdf_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pdfmerger/pdf"
)

// fakeCodec accepts files whose content is "pages=N" and serializes the
// merged document as JSON so tests can inspect order and outline.
type fakeCodec struct{}

func (fakeCodec) NewDocument() pdf.Document {
	return &fakeDocument{}
}

type fakeOutput struct {
	Sources []string       `json:"sources"`
	Pages   int            `json:"pages"`
	Outline []pdf.Bookmark `json:"outline"`
}

type fakeDocument struct {
	out fakeOutput
}

func (d *fakeDocument) Append(name string, data []byte) (int, error) {
	var pages int
	if _, err := fmt.Sscanf(string(data), "pages=%d", &pages); err != nil {
		return 0, errors.New("malformed document")
	}
	if pages == 0 {
		return 0, pdf.ErrEmptySource
	}
	d.out.Sources = append(d.out.Sources, name)
	d.out.Pages += pages
	return pages, nil
}

func (d *fakeDocument) PageCount() int {
	return d.out.Pages
}

func (d *fakeDocument) SetOutline(bookmarks []pdf.Bookmark) {
	d.out.Outline = bookmarks
}

func (d *fakeDocument) Bytes() ([]byte, error) {
	return json.Marshal(d.out)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newFakeMerger() *pdf.Merger {
	return pdf.New(fakeCodec{}, testLogger())
}

func writeFake(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(fmt.Sprintf("pages=%d", pages)), 0644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
	return path
}

func writeRaw(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
	return path
}

func readFakeOutput(t *testing.T, path string) fakeOutput {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) failed: %v", path, err)
	}
	var out fakeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode output failed: %v", err)
	}
	return out
}

type eventRecorder struct {
	events []pdf.ProgressEvent
}

func (r *eventRecorder) Report(e pdf.ProgressEvent) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) statuses() []pdf.Status {
	statuses := make([]pdf.Status, len(r.events))
	for i, e := range r.events {
		statuses[i] = e.Status
	}
	return statuses
}

func (r *eventRecorder) byStatus(status pdf.Status) []pdf.ProgressEvent {
	var matched []pdf.ProgressEvent
	for _, e := range r.events {
		if e.Status == status {
			matched = append(matched, e)
		}
	}
	return matched
}
