package extract

import "sort"

// Result maps a field label to its resolved value. Labels that could not be
// resolved are absent.
type Result map[string]string

// Lookup returns the value resolved for label.
func (r Result) Lookup(label string) (string, bool) {
	v, ok := r[label]
	return v, ok
}

// Labels returns the resolved labels in sorted order.
func (r Result) Labels() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
