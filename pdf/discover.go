package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const statConcurrency = 16

// FileRecord is a snapshot of a candidate source file taken at discovery.
type FileRecord struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
}

// IsPDF reports whether name carries a .pdf extension in any letter case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// ListFiles returns the PDF files directly inside dir in directory order.
func ListFiles(dir string) ([]FileRecord, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	return discover(abs, nil)
}

func validateInput(inputPath string) (string, Kind, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return "", KindInputMissing, fmt.Errorf("%w: %w", ErrInputMissing, err)
	}
	if !info.IsDir() {
		return "", KindNotADirectory, fmt.Errorf("%w: %s", ErrNotADirectory, inputPath)
	}

	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return "", KindInputMissing, fmt.Errorf("%w: %w", ErrInputMissing, err)
	}
	return abs, "", nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern: %w", err)
	}
	return re, nil
}

// discover lists dir one level deep and stats every PDF whose name passes
// pattern. The extension check always runs first.
func discover(dir string, pattern *regexp.Regexp) ([]FileRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !IsPDF(name) {
			continue
		}
		if pattern != nil && !pattern.MatchString(name) {
			continue
		}
		names = append(names, name)
	}

	return statAll(dir, names)
}

func statAll(dir string, names []string) ([]FileRecord, error) {
	records := make([]FileRecord, len(names))

	var g errgroup.Group
	g.SetLimit(statConcurrency)

	for i, name := range names {
		g.Go(func() error {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", name, err)
			}
			records[i] = FileRecord{
				Name:    name,
				Path:    path,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
