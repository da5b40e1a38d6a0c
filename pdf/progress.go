package pdf

// Status identifies the kind of a ProgressEvent.
type Status string

const (
	StatusStarting     Status = "starting"
	StatusProcessing   Status = "processing"
	StatusFileComplete Status = "fileComplete"
	StatusFileError    Status = "fileError"
	StatusSaving       Status = "saving"
	StatusComplete     Status = "complete"
	StatusError        Status = "error"
)

// ProgressEvent describes a stage or per-file boundary of a merge.
// Fields beyond Status and Message are set only where they apply.
type ProgressEvent struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	FileName  string `json:"fileName,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ProgressSink receives progress events. Report runs on the merging
// goroutine, so a slow sink slows the merge down.
type ProgressSink interface {
	Report(ProgressEvent)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(ProgressEvent)

// Report calls f(e).
func (f ProgressFunc) Report(e ProgressEvent) {
	f(e)
}

type progress struct {
	sink ProgressSink
}

func (p progress) emit(e ProgressEvent) {
	if p.sink != nil {
		p.sink.Report(e)
	}
}

// guarded returns a progress that drops panics raised by the sink.
func (p progress) guarded() progress {
	if p.sink == nil {
		return p
	}
	return progress{sink: ProgressFunc(func(e ProgressEvent) {
		defer func() { _ = recover() }()
		p.sink.Report(e)
	})}
}
