package reportscan

import (
	"log/slog"

	"github.com/tsawler/reportscan/extract"
	"github.com/tsawler/reportscan/layout"
)

// ExtractOptions holds configuration for field extraction.
type ExtractOptions struct {
	// PDF page to read (0-based)
	page int

	// Engine limits
	tuning extract.Tuning

	// Glyph grouping for PDF pages
	blocks layout.BlockConfig

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		page:   0,
		tuning: extract.DefaultTuning(),
		blocks: layout.DefaultBlockConfig(),
		logger: nil, // nil means slog.Default()
	}
}

// clone creates a copy of ExtractOptions. All fields are values, so a plain
// copy is enough.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
