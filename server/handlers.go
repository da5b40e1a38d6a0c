package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"pdfmerger/pdf"
	"pdfmerger/s3"
)

var (
	errStorageDisabled = errors.New("storage is not enabled")
	errMergeInProgress = errors.New("a merge to this output path is already running")
)

type pathRequest struct {
	Path string `json:"path"`
}

// fileEntry is a PDF in a listed directory.
type fileEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	SizeHuman string `json:"sizeHuman"`
	ModTime   string `json:"mtime"`
}

type selectInputResponse struct {
	Session SessionState `json:"session"`
	Files   []fileEntry  `json:"files"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, s.session.State())
}

// SelectInput records the input folder and returns its PDF files.
func (s *Server) SelectInput(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		respondError(w, s.logger, http.StatusBadRequest, fmt.Errorf("input directory doesn't exist: %s", req.Path))
		return
	}
	if !info.IsDir() {
		respondError(w, s.logger, http.StatusBadRequest, fmt.Errorf("input path is not a directory: %s", req.Path))
		return
	}

	files, err := listEntries(req.Path)
	if err != nil {
		respondError(w, s.logger, http.StatusInternalServerError, err)
		return
	}

	s.session.SetInput(req.Path)
	respondJSON(w, http.StatusOK, selectInputResponse{
		Session: s.session.State(),
		Files:   files,
	})
}

// SelectOutput records the output file. An empty path selects the default.
func (s *Server) SelectOutput(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	path := req.Path
	if path == "" {
		path = DefaultOutputPath(s.cfg.Merger.Output)
	}

	s.session.SetOutput(path)
	respondJSON(w, http.StatusOK, s.session.State())
}

// ListFiles lists the PDFs in ?dir=, or in the session's input folder.
func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		dir = s.session.State().InputPath
	}

	files, err := listEntries(dir)
	if err != nil {
		respondError(w, s.logger, http.StatusBadRequest, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// Download serves a published merge.
func (s *Server) Download(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.publisher == nil {
		respondError(w, s.logger, http.StatusNotFound, errStorageDisabled)
		return
	}

	key := ps.ByName("key")
	if _, err := uuid.Parse(key); err != nil {
		respondError(w, s.logger, http.StatusBadRequest, fmt.Errorf("invalid key: %s", key))
		return
	}

	data, err := s.publisher.Download(r.Context(), key)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, s3.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, s.logger, status, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func listEntries(dir string) ([]fileEntry, error) {
	records, err := pdf.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]fileEntry, len(records))
	for i, rec := range records {
		entries[i] = fileEntry{
			Name:      rec.Name,
			Path:      rec.Path,
			Size:      rec.Size,
			SizeHuman: units.HumanSize(float64(rec.Size)),
			ModTime:   rec.ModTime.UTC().Format(time.RFC3339),
		}
	}
	return entries, nil
}
