// Package service drives a whole import run: file discovery, format
// detection, importing and ledger output.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/haugli/kontobean/pkg/extract"
	"github.com/haugli/kontobean/pkg/importer"
	"github.com/haugli/kontobean/pkg/ledger"
)

// Processor runs importers over input files and writes beancount output.
type Processor struct {
	logger    *log.Logger
	importers []*importer.Importer
	outputDir string
	stdout    bool
}

// New creates a processor. An empty outputDir prints entries to stdout
// instead of writing ledger files.
func New(importers []*importer.Importer, outputDir string, logger *log.Logger) *Processor {
	return &Processor{
		logger:    logger,
		importers: importers,
		outputDir: outputDir,
		stdout:    outputDir == "",
	}
}

// ProcessPath expands a path or glob and processes every match. Per-file
// problems are recorded in the summary and logged; they do not stop the
// run.
func (p *Processor) ProcessPath(pattern string) (*Summary, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad path pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files found matching %q", pattern)
	}

	summary := &Summary{}
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			p.logger.Warn("failed to stat file", "file", match, "error", err)
			continue
		}
		if info.IsDir() {
			if err := p.processDirectory(match, summary); err != nil {
				p.logger.Warn("failed to process directory", "dir", match, "error", err)
			}
			continue
		}
		p.processFile(match, summary)
	}
	return summary, nil
}

func (p *Processor) processDirectory(dir string, summary *Summary) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p.processFile(filepath.Join(dir, entry.Name()), summary)
	}
	return nil
}

func (p *Processor) processFile(path string, summary *Summary) {
	file := FileResult{File: path}
	defer func() { summary.Files = append(summary.Files, file) }()

	data, err := os.ReadFile(path)
	if err != nil {
		file.Err = err
		p.logger.Warn("failed to read file", "file", path, "error", err)
		return
	}

	format, ok := extract.DetectFormat(filepath.Base(path), data)
	if !ok {
		file.Skipped = true
		p.logger.Debug("unknown file type, skipping", "file", path)
		return
	}

	imp := p.importerFor(format)
	if imp == nil {
		file.Skipped = true
		p.logger.Debug("no importer configured for format", "file", path, "format", format)
		return
	}
	file.Importer = imp.Name()

	p.logger.Info("processing file", "file", path, "importer", imp.Name(), "format", format)

	result, err := imp.Import(data)
	if err != nil {
		file.Err = err
		p.logger.Error("import failed", "file", path, "error", err)
		return
	}
	file.Imported = len(result.Entries)
	file.Failures = result.Failures

	if err := p.write(path, result.Entries); err != nil {
		file.Err = err
		p.logger.Error("failed to write output", "file", path, "error", err)
	}
}

func (p *Processor) importerFor(format extract.Format) *importer.Importer {
	for _, imp := range p.importers {
		if imp.Format() == format {
			return imp
		}
	}
	return nil
}

func (p *Processor) write(inputPath string, entries []ledger.Entry) error {
	if p.stdout {
		return ledger.Write(os.Stdout, entries)
	}

	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".beancount"
	outPath := filepath.Join(p.outputDir, base)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer out.Close()

	if err := ledger.Write(out, entries); err != nil {
		return fmt.Errorf("error writing %s: %w", outPath, err)
	}
	p.logger.Info("wrote ledger file", "output", outPath, "entries", len(entries))
	return nil
}
