// Package reportscan provides a fluent API for pulling labeled measurements
// out of DOCX and PDF test reports.
//
// Basic usage:
//
//	res, err := reportscan.Open("micro.docx").Fields(extract.MicroFields()...)
//	if err != nil {
//	    // the document could not be read; res is empty
//	}
//	nodularity, ok := res.Lookup("Graphite Nodularity")
//
// PDF reports are matched by geometry on a single page:
//
//	res, err := reportscan.Open("tensile.pdf").
//	    Page(0).
//	    WithLogger(logger).
//	    Fields(extract.TensileFields()...)
//
// For lower-level access the docx, reader and extract packages are available.
package reportscan

// Open returns an Extractor for the report at filename. Nothing is read
// until a terminal operation such as Fields is called.
//
// Example:
//
//	res, err := reportscan.Open("report.docx").Fields(specs...)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := reportscan.Must(reportscan.Open("micro.docx").Fields(specs...))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
