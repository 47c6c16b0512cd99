package mtc

import (
	"errors"
	"io/fs"
	"os"
)

// Stage names one part of a run.
type Stage string

const (
	StageChemical Stage = "chemical"
	StageMicro    Stage = "micro"
	StageTensile  Stage = "tensile"
	StageHardness Stage = "hardness"
)

// Problem is a source that could not be read.
type Problem struct {
	Stage Stage
	Path  string
	Err   error
}

// Report summarizes one run.
type Report struct {
	RunID string

	// Written lists the destination cells each stage wrote.
	Written map[Stage][]string

	// Skipped lists stages whose source was not given.
	Skipped []Stage

	Problems []Problem
}

func newReport(runID string) *Report {
	return &Report{RunID: runID, Written: make(map[Stage][]string)}
}

func (r *Report) wrote(s Stage, cells []string) {
	if len(cells) > 0 {
		r.Written[s] = append(r.Written[s], cells...)
	}
}

func (r *Report) skip(s Stage) {
	r.Skipped = append(r.Skipped, s)
}

func (r *Report) problem(s Stage, path string, err error) {
	r.Problems = append(r.Problems, Problem{Stage: s, Path: path, Err: err})
}

// Cells returns the number of destination cells written.
func (r *Report) Cells() int {
	n := 0
	for _, cells := range r.Written {
		n += len(cells)
	}
	return n
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
