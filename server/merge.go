package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"pdfmerger/pdf"
)

// mergeRequest mirrors what the presentation layer submits. Unset fields
// fall back to the session and the merge configuration.
type mergeRequest struct {
	InputPath  string       `json:"inputPath"`
	OutputPath string       `json:"outputPath"`
	Options    mergeOptions `json:"options"`
	FileList   []fileRef    `json:"fileList"`
	Publish    bool         `json:"publish"`
}

type mergeOptions struct {
	SortBy       *pdf.SortKey `json:"sortBy"`
	Descending   *bool        `json:"descending"`
	FilePattern  *string      `json:"filePattern"`
	AddBookmarks *bool        `json:"addBookmarks"`
}

// fileRef is a file list entry: either a path string or an object with a
// path (or name).
type fileRef string

func (f *fileRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = fileRef(s)
		return nil
	}

	var obj struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("file list entry must be a string or an object: %w", err)
	}
	if obj.Path != "" {
		*f = fileRef(obj.Path)
	} else {
		*f = fileRef(obj.Name)
	}
	return nil
}

// streamLine is one line of the newline-delimited JSON merge response.
// Every line but the last carries an event; the last carries the result.
type streamLine struct {
	Event        *pdf.ProgressEvent `json:"event,omitempty"`
	Result       *pdf.Result        `json:"result,omitempty"`
	ObjectKey    string             `json:"objectKey,omitempty"`
	PublishError string             `json:"publishError,omitempty"`
}

func (s *Server) options(req mergeRequest) pdf.Options {
	opts := s.cfg.Merger.Options()

	if req.Options.SortBy != nil {
		opts.SortBy = *req.Options.SortBy
	}
	if req.Options.Descending != nil {
		opts.Descending = *req.Options.Descending
	}
	if req.Options.FilePattern != nil {
		opts.FilePattern = *req.Options.FilePattern
	}
	if req.Options.AddBookmarks != nil {
		opts.AddBookmarks = pdf.Bool(*req.Options.AddBookmarks)
	}

	for _, ref := range req.FileList {
		opts.CustomFileOrder = append(opts.CustomFileOrder, string(ref))
	}
	return opts
}

// Merge runs the pipeline and streams its progress events followed by the
// result as newline-delimited JSON.
func (s *Server) Merge(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.rejectMerge(w, http.StatusBadRequest, err)
		return
	}

	state := s.session.State()
	if req.InputPath == "" {
		req.InputPath = state.InputPath
	}
	if req.OutputPath == "" {
		req.OutputPath = state.OutputPath
	}
	if req.InputPath == "" || req.OutputPath == "" {
		s.rejectMerge(w, http.StatusBadRequest, errors.New("input and output paths are required"))
		return
	}
	if req.Publish && s.publisher == nil {
		s.rejectMerge(w, http.StatusBadRequest, errStorageDisabled)
		return
	}

	if !s.acquire(req.OutputPath) {
		s.rejectMerge(w, http.StatusConflict, errMergeInProgress)
		return
	}
	defer s.release(req.OutputPath)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	write := func(line streamLine) {
		if err := enc.Encode(line); err != nil {
			s.logger.Warn("progress stream write failed", "error", err)
			return
		}
		rc.Flush()
	}

	opts := s.options(req)
	opts.OnProgress = pdf.ProgressFunc(func(e pdf.ProgressEvent) {
		write(streamLine{Event: &e})
	})

	result := s.merger.Merge(req.InputPath, req.OutputPath, opts)
	final := streamLine{Result: &result}

	if req.Publish && result.Success {
		key := uuid.NewString()
		if err := s.publisher.Upload(r.Context(), key, req.OutputPath); err != nil {
			s.logger.Error("publish failed", "output", req.OutputPath, "error", err)
			final.PublishError = err.Error()
		} else {
			final.ObjectKey = key
		}
	}

	write(final)
}

func (s *Server) rejectMerge(w http.ResponseWriter, status int, err error) {
	s.logger.Error("merge rejected", "error", err, "status", status)
	respondJSON(w, status, pdf.Result{
		Success: false,
		Message: fmt.Sprintf("Error: %v", err),
	})
}
