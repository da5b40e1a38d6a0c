package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bradhe/stopwatch"
	"github.com/docker/go-units"

	"pdfmerger/config"
	"pdfmerger/logging"
	"pdfmerger/pdf"
)

const (
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

const usage = `
PDF Merger - Combine multiple PDF files into one

Usage:
  pdfmerger [options]

Options:
  --input, -i       Input directory containing PDFs (default: ./pdfs-to-merge)
  --output, -o      Output PDF file path (default: ./merged.pdf)
  --sort-by         Sort files by: 'name', 'date', or 'size' (default: name)
  --descending      Sort in descending order
  --pattern         Regex pattern to match specific filenames
  --no-bookmarks    Disable adding bookmarks to the merged PDF
  --config          Configuration file (default: config.toml)
  --verbose         Log pipeline activity to stderr
  --cli-only        Force CLI mode even without other arguments
  --help, -h        Show this help
`

type cliOptions struct {
	input       string
	output      string
	sortBy      string
	descending  bool
	pattern     string
	noBookmarks bool
	configPath  string
	verbose     bool
	cliOnly     bool
}

// parseCLI reads the flags without printing; runCLI reports help and errors.
func parseCLI(args []string) (*cliOptions, error) {
	var o cliOptions

	fs := flag.NewFlagSet("pdfmerger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVar(&o.input, "input", "", "")
	fs.StringVar(&o.input, "i", "", "")
	fs.StringVar(&o.output, "output", "", "")
	fs.StringVar(&o.output, "o", "", "")
	fs.StringVar(&o.sortBy, "sort-by", "", "")
	fs.BoolVar(&o.descending, "descending", false, "")
	fs.StringVar(&o.pattern, "pattern", "", "")
	fs.BoolVar(&o.noBookmarks, "no-bookmarks", false, "")
	fs.StringVar(&o.configPath, "config", config.BaseConfigFile, "")
	fs.BoolVar(&o.verbose, "verbose", false, "")
	fs.BoolVar(&o.cliOnly, "cli-only", false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &o, nil
}

// runCLI merges once and returns the process exit code.
func runCLI(args []string, stdout, stderr io.Writer) int {
	o, err := parseCLI(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%sError: %v%s\nRun with --help for usage.\n", colorRed, err, colorReset)
		return 1
	}

	cfg, err := config.Load(o.configPath)
	if err == nil {
		err = cfg.Finalize()
	}
	if err != nil {
		fmt.Fprintf(stderr, "%sconfiguration: %v%s\n", colorRed, err, colorReset)
		return 1
	}

	if !o.verbose {
		cfg.Logging.Level = logging.LevelError
	}
	logger := logging.New(&cfg.Logging, stderr)

	input, output := cfg.Merger.Input, cfg.Merger.Output
	if o.input != "" {
		input = o.input
	}
	if o.output != "" {
		output = o.output
	}

	opts := cfg.Merger.Options()
	if o.sortBy != "" {
		opts.SortBy = pdf.SortKey(o.sortBy)
	}
	if o.descending {
		opts.Descending = true
	}
	if o.pattern != "" {
		opts.FilePattern = o.pattern
	}
	if o.noBookmarks {
		opts.AddBookmarks = pdf.Bool(false)
	}
	opts.OnProgress = pdf.ProgressFunc(func(e pdf.ProgressEvent) {
		if e.Status == pdf.StatusProcessing {
			fmt.Fprintf(stdout, "\rProcessing file %d/%d: %s", e.Current, e.Total, e.Message)
		}
	})

	watch := stopwatch.Start()
	result := pdf.New(pdf.NewPDFCPUCodec(), logger).Merge(input, output, opts)
	watch.Stop()

	if !result.Success {
		fmt.Fprintf(stderr, "\n%s%s%s\n", colorRed, result.Message, colorReset)
		return 1
	}

	fmt.Fprintf(stdout, "\n%s%s%s\n", colorGreen, result.Message, colorReset)
	if info, err := os.Stat(output); err == nil {
		fmt.Fprintf(stdout, "%s written in %vms\n", units.HumanSize(float64(info.Size())), watch.Milliseconds())
	}
	return 0
}
