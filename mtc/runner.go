// Package mtc fills a material test certificate workbook from the lab
// reports of one casting: a microstructure DOCX, tensile and hardness PDFs
// and a spectrometer workbook.
package mtc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tsawler/reportscan"
	"github.com/tsawler/reportscan/config"
	"github.com/tsawler/reportscan/sheet"
)

var (
	// ErrNoDestination is returned when Sources has no destination workbook.
	ErrNoDestination = errors.New("mtc: destination workbook is required")

	// ErrNothingToDo is returned when both Mechanical and Chemical are off.
	ErrNothingToDo = errors.New("mtc: select mechanical, chemical or both")
)

// Sources names the files of one run. Only Destination is required; an
// empty source path skips that source.
type Sources struct {
	Destination string
	Micro       string
	Tensile     string
	Hardness    string
	Spectro     string
}

// Options selects the parts of a run.
type Options struct {
	Mechanical bool
	Chemical   bool

	// Progress, if set, is called with a percentage and a short status as
	// the run moves through its stages.
	Progress func(percent int, status string)
}

func (o Options) progress(percent int, status string) {
	if o.Progress != nil {
		o.Progress(percent, status)
	}
}

// Runner fills destination workbooks using one configuration.
type Runner struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger uses slog.Default().
func NewRunner(cfg config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run reads every selected source and writes what it finds into the
// destination workbook, then saves it. A source that cannot be read is
// recorded in the report and the run carries on. Run returns an error only
// when the destination cannot be opened, written or saved, or when ctx is
// done before the save.
func (r *Runner) Run(ctx context.Context, src Sources, opts Options) (*Report, error) {
	if src.Destination == "" {
		return nil, ErrNoDestination
	}
	if !opts.Mechanical && !opts.Chemical {
		return nil, ErrNothingToDo
	}

	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	rep := newReport(runID)

	logger.Info("run started", "destination", src.Destination, "mechanical", opts.Mechanical, "chemical", opts.Chemical)
	opts.progress(10, "Opening destination workbook...")

	wb, err := sheet.Open(src.Destination)
	if err != nil {
		logger.Error("cannot open destination", "path", src.Destination, "error", err)
		return rep, err
	}
	defer wb.Close()

	if opts.Chemical {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := r.chemical(logger, wb, src.Spectro, rep, opts); err != nil {
			return rep, err
		}
	}

	if opts.Mechanical {
		opts.progress(40, "Processing mechanical inputs...")
		stages := []struct {
			stage Stage
			path  string
			run   func(*slog.Logger, *sheet.Workbook, string) ([]string, error)
		}{
			{StageMicro, src.Micro, r.micro},
			{StageTensile, src.Tensile, r.tensile},
			{StageHardness, src.Hardness, r.hardness},
		}
		for _, s := range stages {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			if s.stage == StageTensile {
				opts.progress(60, "Processing tensile and hardness...")
			}
			if s.path == "" {
				rep.skip(s.stage)
				continue
			}

			cells, err := s.run(logger.With("stage", string(s.stage)), wb, s.path)
			var readErr *reportscan.DocumentReadError
			switch {
			case errors.As(err, &readErr):
				logger.Error("source unreadable", "stage", string(s.stage), "path", s.path, "error", err)
				rep.problem(s.stage, s.path, err)
			case err != nil:
				return rep, err
			}
			rep.wrote(s.stage, cells)
		}
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	opts.progress(90, "Saving file...")
	if err := wb.Save(); err != nil {
		logger.Error("cannot save destination", "path", src.Destination, "error", err)
		return rep, err
	}

	opts.progress(100, "Done!")
	logger.Info("run complete", "cells", rep.Cells(), "problems", len(rep.Problems))
	return rep, nil
}

func (r *Runner) chemical(logger *slog.Logger, wb *sheet.Workbook, path string, rep *Report, opts Options) error {
	if path == "" || !exists(path) {
		logger.Info("skipping chemical: spectrometer file missing or not selected", "path", path)
		rep.skip(StageChemical)
		return nil
	}

	logger.Info("starting chemical transfer", "file", filepath.Base(path))
	opts.progress(20, "Processing chemical data...")

	mappings := make([]sheet.Mapping, len(r.cfg.Spectro))
	for i, m := range r.cfg.Spectro {
		mappings[i] = sheet.Mapping{Source: m.Source, Dest: m.Dest}
	}

	n, err := wb.TransferFile(path, mappings)
	cells := make([]string, n)
	for i := range cells {
		cells[i] = mappings[i].Dest
	}
	rep.wrote(StageChemical, cells)
	if err != nil {
		logger.Error("chemical transfer failed", "path", path, "copied", n, "error", err)
		rep.problem(StageChemical, path, err)
		return nil
	}
	logger.Info("chemical data transferred", "cells", n)
	return nil
}

func (r *Runner) extractor(logger *slog.Logger, path string) *reportscan.Extractor {
	return reportscan.Open(path).
		Page(r.cfg.Engine.Page).
		WithTuning(r.cfg.Tuning()).
		WithLogger(logger)
}

func (r *Runner) micro(logger *slog.Logger, wb *sheet.Workbook, path string) ([]string, error) {
	res, err := r.extractor(logger, path).Fields(r.cfg.MicroSpecs()...)
	if err != nil {
		return nil, err
	}
	return wb.Apply(res, r.cfg.MicroCells())
}

func (r *Runner) tensile(logger *slog.Logger, wb *sheet.Workbook, path string) ([]string, error) {
	res, err := r.extractor(logger, path).Fields(r.cfg.TensileSpecs()...)
	if err != nil {
		return nil, err
	}
	return wb.Apply(res, r.cfg.TensileCells())
}

func (r *Runner) hardness(logger *slog.Logger, wb *sheet.Workbook, path string) ([]string, error) {
	values, err := r.extractor(logger, path).Hardness(r.cfg.HardnessSpec())
	if err != nil {
		return nil, err
	}
	cells, err := wb.Fill(r.cfg.Hardness.Cells, values)
	if err != nil {
		return cells, fmt.Errorf("write hardness: %w", err)
	}
	return cells, nil
}
