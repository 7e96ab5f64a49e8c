package parser

import "strings"

// Aggregator pages concatenate the target listing with snippets of nearby
// listings; everything past the first of these markers belongs to other
// properties and must not feed the field extractors.
var boilerplateMarkers = []string{
	"Facts & features",
	"Nearby homes",
	"Local experts",
	"Schools provided by",
}

// Segments is the tokenized form of one listing text.
type Segments struct {
	// Full is the input unchanged. Some extractors (price top-window,
	// monthly payment, open-house blocks) deliberately scan it.
	Full string
	// Relevant is the prefix of Full before the first boilerplate marker.
	Relevant string
	// Lines is Relevant split on newlines, each trimmed.
	Lines []string
}

// Segment splits raw listing text into the full text, the relevant prefix,
// and trimmed lines.
func Segment(text string) Segments {
	relevant := text
	lower := strings.ToLower(text)
	for _, marker := range boilerplateMarkers {
		if idx := strings.Index(lower, strings.ToLower(marker)); idx != -1 {
			relevant = text[:idx]
			break
		}
	}

	lines := strings.Split(relevant, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}

	return Segments{Full: text, Relevant: relevant, Lines: lines}
}
