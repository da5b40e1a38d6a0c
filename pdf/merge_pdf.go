// Package pdf merges a directory of PDF documents into a single document.
//
// A merge runs its stages strictly in sequence: validate the input
// directory, discover PDF files, resolve the processing order, ingest each
// file, attach the outline and persist the result. A file that cannot be
// read or parsed is skipped and reported; only validation, discovery and
// persistence failures stop a merge early.
package pdf

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bradhe/stopwatch"
)

// Merger runs merges with a given codec and logger. It holds no state
// between merges, so one Merger may serve concurrent merges as long as they
// write to different output paths.
type Merger struct {
	codec  Codec
	logger *slog.Logger
}

// New creates a Merger.
func New(codec Codec, logger *slog.Logger) *Merger {
	return &Merger{
		codec:  codec,
		logger: logger.With("component", "merger"),
	}
}

// Merge merges the PDF files in inputPath into outputPath using pdfcpu and
// no logging.
func Merge(inputPath, outputPath string, opts Options) Result {
	return New(NewPDFCPUCodec(), slog.New(slog.DiscardHandler)).Merge(inputPath, outputPath, opts)
}

// Merge merges the PDF files in inputPath into outputPath. Failures are
// reported in the returned Result, never by panic.
func (m *Merger) Merge(inputPath, outputPath string, opts Options) (result Result) {
	p := progress{sink: opts.OnProgress}
	logger := m.logger.With("input", inputPath, "output", outputPath)

	defer func() {
		if r := recover(); r != nil {
			result = m.abort(p.guarded(), logger, KindUnexpectedFailure, fmt.Errorf("%w: %v", ErrUnexpected, r))
		}
	}()

	watch := stopwatch.Start()

	p.emit(ProgressEvent{
		Status:  StatusStarting,
		Message: "Starting PDF merge process...",
	})

	dir, kind, err := validateInput(inputPath)
	if err != nil {
		logger.Warn("invalid input", "error", err)
		if kind == KindNotADirectory {
			return failed(kind, err, fmt.Sprintf("Input path is not a directory: %s", inputPath))
		}
		return failed(kind, err, fmt.Sprintf("Input directory doesn't exist: %s", inputPath))
	}

	pattern, err := compilePattern(opts.FilePattern)
	if err != nil {
		return m.abort(p, logger, KindUnexpectedFailure, fmt.Errorf("%w: %w", ErrUnexpected, err))
	}

	files, err := discover(dir, pattern)
	if err != nil {
		return m.abort(p, logger, KindUnexpectedFailure, fmt.Errorf("%w: %w", ErrUnexpected, err))
	}
	if len(files) == 0 {
		logger.Warn("no pdf files found")
		return failed(KindNoFilesFound, ErrNoFilesFound, fmt.Sprintf("No PDF files found in %s", inputPath))
	}

	ordered := resolveOrder(files, opts)
	total := len(ordered)

	p.emit(ProgressEvent{
		Status:  StatusProcessing,
		Message: fmt.Sprintf("Found %d PDF files to merge.", total),
		Current: 0,
		Total:   total,
	})

	doc := m.codec.NewDocument()
	bookmarks := make([]Bookmark, 0, total)
	pageCount := 0

	for i, file := range ordered {
		p.emit(ProgressEvent{
			Status:  StatusProcessing,
			Message: fmt.Sprintf("Processing file %d of %d: %s", i+1, total, file.Name),
			Current: i,
			Total:   total,
		})

		start := pageCount
		pages, err := m.ingest(doc, file, opts.MaxFileSize)
		if err != nil {
			logger.Warn("skipping file", "file", file.Name, "error", err)
			p.emit(ProgressEvent{
				Status:   StatusFileError,
				Message:  fmt.Sprintf("Error processing file \"%s\": %v", file.Name, err),
				FileName: file.Name,
				Error:    err.Error(),
			})
			continue
		}
		pageCount += pages

		bookmarks = append(bookmarks, Bookmark{
			Title:      bookmarkTitle(file.Name),
			PageNumber: start,
		})

		p.emit(ProgressEvent{
			Status:    StatusFileComplete,
			Message:   fmt.Sprintf("Added \"%s\" (%d pages)", file.Name, pages),
			Current:   i + 1,
			Total:     total,
			FileName:  file.Name,
			PageCount: pageCount,
		})
	}

	if pageCount == 0 {
		logger.Warn("no valid pdf content", "files", total)
		return failed(KindNoValidContent, ErrNoValidContent, "No valid PDF content could be processed.")
	}

	if opts.bookmarksEnabled() {
		doc.SetOutline(bookmarks)
	}

	p.emit(ProgressEvent{
		Status:    StatusSaving,
		Message:   "Saving merged PDF...",
		PageCount: pageCount,
	})

	if err := persist(doc, outputPath); err != nil {
		return m.abort(p, logger, KindPersistFailure, err)
	}

	result = Result{
		Success:   true,
		Message:   fmt.Sprintf("Successfully merged %d PDFs with %d total pages into \"%s\"", total, pageCount, outputPath),
		FileCount: total,
		PageCount: pageCount,
	}

	p.emit(ProgressEvent{
		Status:    StatusComplete,
		Message:   result.Message,
		PageCount: pageCount,
	})

	watch.Stop()
	logger.Info("merge complete",
		"files", total,
		"merged", len(bookmarks),
		"pages", pageCount,
		"elapsed_ms", watch.Milliseconds(),
	)

	return result
}

// ingest reads one file and appends its pages to doc.
func (m *Merger) ingest(doc Document, file FileRecord, maxSize int64) (int, error) {
	watch := stopwatch.Start()

	if maxSize > 0 && file.Size > maxSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return 0, err
	}

	pages, err := doc.Append(file.Name, data)
	if err != nil {
		return 0, err
	}

	watch.Stop()
	m.logger.Debug("file ingested", "file", file.Name, "pages", pages, "elapsed_ms", watch.Milliseconds())
	return pages, nil
}

func (m *Merger) abort(p progress, logger *slog.Logger, kind Kind, err error) Result {
	logger.Error("merge failed", "kind", kind, "error", err)
	message := fmt.Sprintf("Error merging PDFs: %v", err)
	p.emit(ProgressEvent{
		Status:  StatusError,
		Message: message,
	})
	return failed(kind, err, message)
}
