package server

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Session holds the folder and output file picked in the presentation
// layer. It belongs to the host; the merge pipeline never sees it.
type Session struct {
	mu     sync.RWMutex
	id     string
	input  string
	output string
}

// SessionState is the JSON view of a Session.
type SessionState struct {
	ID         string `json:"id"`
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
}

// NewSession starts a session with the given initial selections.
func NewSession(input, output string) *Session {
	return &Session{
		id:     uuid.NewString(),
		input:  input,
		output: output,
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{ID: s.id, InputPath: s.input, OutputPath: s.output}
}

func (s *Session) SetInput(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = path
}

func (s *Session) SetOutput(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = path
}

// DefaultOutputPath is merged.pdf in the user's Documents folder, or
// fallback when the home directory is unknown.
func DefaultOutputPath(fallback string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return fallback
	}
	return filepath.Join(home, "Documents", "merged.pdf")
}
