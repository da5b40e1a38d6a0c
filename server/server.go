// Package server exposes the merge pipeline to a presentation layer over
// HTTP: folder and output selection, PDF listing, merging with a streamed
// progress feed, and download of published merges.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/julienschmidt/httprouter"

	"pdfmerger/config"
	"pdfmerger/pdf"
)

// Publisher stores merged documents in an object store.
type Publisher interface {
	Upload(ctx context.Context, key, filePath string) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// Server hosts one presentation session.
type Server struct {
	cfg       *config.Config
	merger    *pdf.Merger
	publisher Publisher
	session   *Session
	logger    *slog.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

// New creates a Server. publisher may be nil when storage is disabled.
func New(cfg *config.Config, merger *pdf.Merger, publisher Publisher, logger *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		merger:    merger,
		publisher: publisher,
		session:   NewSession(cfg.Merger.Input, DefaultOutputPath(cfg.Merger.Output)),
		logger:    logger.With("component", "server"),
		inflight:  make(map[string]bool),
	}
}

// Session returns the host session.
func (s *Server) Session() *Session {
	return s.session
}

// Handler returns the routes mounted under the configured prefix.
func (s *Server) Handler() http.Handler {
	prefix := s.cfg.Server.Prefix

	router := httprouter.New()
	router.GET(prefix+"/healthz", s.Health)
	router.GET(prefix+"/session", s.GetSession)
	router.PUT(prefix+"/session/input", s.SelectInput)
	router.PUT(prefix+"/session/output", s.SelectOutput)
	router.GET(prefix+"/files", s.ListFiles)
	router.POST(prefix+"/merge", s.Merge)
	router.GET(prefix+"/merged/:key", s.Download)
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: s.cfg.Server.WriteTimeoutDuration(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr, "prefix", s.cfg.Server.Prefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// acquire marks outputPath as being written. Two merges must not target
// the same file at once, however the path is spelled.
func (s *Server) acquire(outputPath string) bool {
	key := outputKey(outputPath)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[key] {
		return false
	}
	s.inflight[key] = true
	return true
}

func (s *Server) release(outputPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, outputKey(outputPath))
}

func outputKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
