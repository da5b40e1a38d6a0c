package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/docker/go-units"

	"pdfmerger/pdf"
)

const (
	EnvMergeInput       = "PDFMERGE_INPUT"
	EnvMergeOutput      = "PDFMERGE_OUTPUT"
	EnvMergeSortBy      = "PDFMERGE_SORT_BY"
	EnvMergeBookmarks   = "PDFMERGE_BOOKMARKS"
	EnvMergeMaxFileSize = "PDFMERGE_MAX_FILE_SIZE"
)

// MergeConfig holds the defaults applied to merges that do not override them.
type MergeConfig struct {
	// Input is the default input directory. Default: "pdfs-to-merge"
	Input string `toml:"input"`
	// Output is the default output file. Default: "merged.pdf"
	Output     string      `toml:"output"`
	SortBy     pdf.SortKey `toml:"sort_by"`
	Descending bool        `toml:"descending"`
	Pattern    string      `toml:"pattern"`
	// Bookmarks defaults to true when unset.
	Bookmarks *bool `toml:"bookmarks"`
	// MaxFileSize is a human-readable size such as "50MB". Empty means no limit.
	MaxFileSize    string `toml:"max_file_size"`
	maxFileSizeVal int64
}

// MaxFileSizeBytes returns the parsed MaxFileSize, 0 when unlimited.
func (c *MergeConfig) MaxFileSizeBytes() int64 {
	return c.maxFileSizeVal
}

// Options returns pipeline options carrying these defaults.
func (c *MergeConfig) Options() pdf.Options {
	return pdf.Options{
		SortBy:       c.SortBy,
		Descending:   c.Descending,
		FilePattern:  c.Pattern,
		AddBookmarks: pdf.Bool(c.Bookmarks == nil || *c.Bookmarks),
		MaxFileSize:  c.maxFileSizeVal,
	}
}

// Finalize applies defaults, loads environment overrides, and validates the merge configuration.
func (c *MergeConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *MergeConfig) Merge(overlay *MergeConfig) {
	if overlay.Input != "" {
		c.Input = overlay.Input
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
	if overlay.SortBy != "" {
		c.SortBy = overlay.SortBy
	}
	if overlay.Descending {
		c.Descending = true
	}
	if overlay.Pattern != "" {
		c.Pattern = overlay.Pattern
	}
	if overlay.Bookmarks != nil {
		c.Bookmarks = pdf.Bool(*overlay.Bookmarks)
	}
	if overlay.MaxFileSize != "" {
		c.MaxFileSize = overlay.MaxFileSize
	}
}

func (c *MergeConfig) loadDefaults() {
	if c.Input == "" {
		c.Input = "pdfs-to-merge"
	}
	if c.Output == "" {
		c.Output = "merged.pdf"
	}
	if c.SortBy == "" {
		c.SortBy = pdf.SortByName
	}
	if c.Bookmarks == nil {
		c.Bookmarks = pdf.Bool(true)
	}
}

func (c *MergeConfig) loadEnv() error {
	if v := os.Getenv(EnvMergeInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvMergeOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvMergeSortBy); v != "" {
		c.SortBy = pdf.SortKey(v)
	}
	if v := os.Getenv(EnvMergeBookmarks); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMergeBookmarks, err)
		}
		c.Bookmarks = pdf.Bool(b)
	}
	if v := os.Getenv(EnvMergeMaxFileSize); v != "" {
		c.MaxFileSize = v
	}
	return nil
}

func (c *MergeConfig) validate() error {
	switch c.SortBy {
	case pdf.SortByName, pdf.SortByDate, pdf.SortBySize:
	default:
		return fmt.Errorf("invalid sort_by: %s (must be name, date, or size)", c.SortBy)
	}

	if c.Pattern != "" {
		if _, err := regexp.Compile(c.Pattern); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}

	c.maxFileSizeVal = 0
	if c.MaxFileSize != "" {
		size, err := units.FromHumanSize(c.MaxFileSize)
		if err != nil {
			return fmt.Errorf("invalid max_file_size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("max_file_size must be positive")
		}
		c.maxFileSizeVal = size
	}

	return nil
}
