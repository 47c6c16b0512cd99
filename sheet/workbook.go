// Package sheet writes extracted values into the active sheet of an XLSX
// workbook and copies cells between workbooks.
package sheet

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Workbook is an XLSX file opened for editing. Every read and write goes to
// the sheet that was active when the file was opened.
type Workbook struct {
	file  *excelize.File
	path  string
	sheet string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		f.Close()
		return nil, fmt.Errorf("open workbook %s: no active sheet", path)
	}
	return &Workbook{file: f, path: path, sheet: name}, nil
}

// Sheet returns the name of the active sheet.
func (w *Workbook) Sheet() string {
	return w.sheet
}

// Get returns the text of cell as displayed.
func (w *Workbook) Get(cell string) (string, error) {
	return w.file.GetCellValue(w.sheet, cell)
}

// Set writes value to cell.
func (w *Workbook) Set(cell string, value any) error {
	if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", w.sheet, cell, err)
	}
	return nil
}

// Apply writes values[label] to cells[label] for every label that has both
// a value and a cell. Labels without a value leave their cell untouched.
// It returns the cells written, sorted.
func (w *Workbook) Apply(values, cells map[string]string) ([]string, error) {
	var written []string
	for label, cell := range cells {
		v, ok := values[label]
		if !ok {
			continue
		}
		if err := w.Set(cell, v); err != nil {
			return written, err
		}
		written = append(written, cell)
	}
	sort.Strings(written)
	return written, nil
}

// Fill writes values to cells pairwise, stopping at the shorter list.
func (w *Workbook) Fill(cells, values []string) ([]string, error) {
	n := min(len(cells), len(values))
	for i := 0; i < n; i++ {
		if err := w.Set(cells[i], values[i]); err != nil {
			return cells[:i], err
		}
	}
	return cells[:n], nil
}

// Save writes the workbook back to the path it was opened from.
func (w *Workbook) Save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close releases the workbook without saving.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Mapping copies the Source cell of one workbook to the Dest cell of another.
type Mapping struct {
	Source string
	Dest   string
}

// Transfer copies each mapped cell of src into w. Numbers and booleans keep
// their type, text stays text, and an empty source cell clears the
// destination. It returns the number of cells copied.
func (w *Workbook) Transfer(src *Workbook, mappings []Mapping) (int, error) {
	for i, m := range mappings {
		v, err := src.value(m.Source)
		if err != nil {
			return i, fmt.Errorf("read %s!%s: %w", src.sheet, m.Source, err)
		}
		if err := w.Set(m.Dest, v); err != nil {
			return i, err
		}
	}
	return len(mappings), nil
}

// TransferFile opens the workbook at srcPath, transfers mappings into w and
// closes it.
func (w *Workbook) TransferFile(srcPath string, mappings []Mapping) (int, error) {
	src, err := Open(srcPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	return w.Transfer(src, mappings)
}

// value returns the typed content of cell. Formula cells yield their cached
// result.
func (w *Workbook) value(cell string) (any, error) {
	typ, err := w.file.GetCellType(w.sheet, cell)
	if err != nil {
		return nil, err
	}
	raw, err := w.file.GetCellValue(w.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	switch {
	case raw == "":
		return nil, nil
	case typ == excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE", nil
	case typ == excelize.CellTypeSharedString, typ == excelize.CellTypeInlineString:
		return raw, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return raw, nil
}
