package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// persist serializes doc once and writes it to outputPath through a
// temporary sibling file, replacing any existing file.
func persist(doc Document, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create output directory: %w", ErrPersist, err)
	}

	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("%w: serialize: %w", ErrPersist, err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(outputPath)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("%w: write temp file: %w", ErrPersist, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename temp file: %w", ErrPersist, err)
	}

	return nil
}
