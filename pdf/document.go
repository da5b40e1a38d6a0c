package pdf

import "strings"

// Bookmark is an outline entry pointing at the first page a source file
// contributed. PageNumber is 0-based.
type Bookmark struct {
	Title      string `json:"title"`
	PageNumber int    `json:"pageNumber"`
}

// Codec provides the PDF parsing and assembly capability the pipeline
// depends on.
type Codec interface {
	NewDocument() Document
}

// Document accumulates pages from source files into one output.
// A Document is owned by a single merge and is not safe for concurrent use.
type Document interface {
	// Append parses data and copies all of its pages onto the end of the
	// document. It returns the number of pages added. On error the document
	// is unchanged.
	Append(name string, data []byte) (int, error)

	// PageCount returns the number of pages appended so far.
	PageCount() int

	// SetOutline replaces the flat outline written with the document.
	SetOutline(bookmarks []Bookmark)

	// Bytes serializes the document. It may be called once.
	Bytes() ([]byte, error)
}

// bookmarkTitle strips one trailing lowercase ".pdf". "Report.PDF" keeps its
// extension.
func bookmarkTitle(name string) string {
	return strings.TrimSuffix(name, ".pdf")
}
