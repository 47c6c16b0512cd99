// Package extract resolves labeled measurements from report text without a
// schema, using only the proximity of a human-readable label to its value.
//
// Two input shapes are supported:
//
//   - an ordered sequence of [model.Fragment] values from a DOCX document,
//     searched with [LocateFragment] and resolved with a sequential [Rule]
//     over a bounded window of the fragments that follow the label
//   - a set of [model.Element] blocks from a PDF page, searched with
//     [LocateElement] and resolved geometrically by [ResolveNearestRight] and
//     [ResolveHardness]
//
// Label matching is case-insensitive substring containment after NFC
// normalisation. Unit keywords are matched case-sensitively.
//
// # Engine
//
// [Engine] runs a list of [FieldSpec] values over one document's collection
// and returns a fresh [Result]. It holds only its [Tuning] and logger, never
// mutates its input, and is safe for concurrent use on independent
// documents:
//
//	eng := extract.NewEngine(extract.DefaultTuning(), logger)
//	res := eng.Sequential(fragments, extract.MicroFields()...)
//	if v, ok := res.Lookup("Graphite Nodularity"); ok {
//	    fmt.Println(v)
//	}
//
// A field that cannot be resolved is simply absent from the Result.
//
// # Geometry
//
// Boxes use PDF page coordinates: origin bottom-left, Y increasing upward.
// "Top of page first" therefore means descending Top().
package extract
