package model

// Fragment is one run of text from a word-processing document.
type Fragment struct {
	// Text is non-empty and trimmed.
	Text string

	// Index is the fragment's position in document reading order (0-based).
	Index int
}

// Element is one text-bearing layout block from a page-layout document.
type Element struct {
	// Text is the block's literal text. Lines are separated by "\n".
	Text string

	// BBox is the block's extent in page coordinates.
	BBox BBox
}

// Texts returns the text of each fragment, in order.
func Texts(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Text
	}
	return out
}
