package pdf

import "errors"

// Kind classifies the outcome of a merge.
type Kind string

const (
	KindInputMissing         Kind = "InputMissing"
	KindNotADirectory        Kind = "NotADirectory"
	KindNoFilesFound         Kind = "NoFilesFound"
	KindPerFileIngestFailure Kind = "PerFileIngestFailure"
	KindNoValidContent       Kind = "NoValidContent"
	KindPersistFailure       Kind = "PersistFailure"
	KindUnexpectedFailure    Kind = "UnexpectedFailure"
)

// Pipeline errors. Result.Err wraps one of these on failure.
var (
	ErrInputMissing   = errors.New("input directory does not exist")
	ErrNotADirectory  = errors.New("input path is not a directory")
	ErrNoFilesFound   = errors.New("no PDF files found")
	ErrNoValidContent = errors.New("no valid PDF content")
	ErrPersist        = errors.New("persist merged document")
	ErrUnexpected     = errors.New("unexpected merge failure")
)

// Causes of a skipped source file.
var (
	ErrEmptySource     = errors.New("document has no pages")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrAlreadyFinished = errors.New("document already serialized")
)

// Result is the single return value of a merge.
type Result struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	FileCount int    `json:"fileCount,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
	Kind      Kind   `json:"kind,omitempty"`
	Err       error  `json:"-"`
}

func failed(kind Kind, err error, message string) Result {
	return Result{
		Success: false,
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}
