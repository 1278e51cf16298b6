package quiz

import (
	"regexp"
	"strings"
)

// Convention identifies which answer-marker style a line (and, by the
// consistency rule, a whole block) uses.
type Convention int

const (
	// ConventionParen is the radio style: "- (X) text" / "- ( ) text".
	ConventionParen Convention = iota + 1
	// ConventionBracket is the checkbox style: "- [X] text" / "- [ ] text".
	ConventionBracket
)

func (c Convention) String() string {
	switch c {
	case ConventionParen:
		return "( )"
	case ConventionBracket:
		return "[ ]"
	}
	return "unknown"
}

var (
	parenMarkerRe   = regexp.MustCompile(`^-\s+\(([Xx ])\)\s*(.*)$`)
	bracketMarkerRe = regexp.MustCompile(`^-\s+\[([Xx ])\]\s*(.*)$`)
)

const reasonHeader = "# reason"

// marker is the classification of an answer-marker line: its convention,
// correctness flag, and whatever inline text follows the marker (possibly
// empty when the option body lives entirely on subsequent lines).
type marker struct {
	conv    Convention
	correct bool
	text    string
}

// classifyMarker decides whether a line is an answer-marker line. Lines
// inside a fenced code region are never markers. The correctness letter
// is case-insensitive.
func classifyMarker(l SourceLine) (marker, bool) {
	if l.InFence {
		return marker{}, false
	}
	if m := parenMarkerRe.FindStringSubmatch(l.Text); m != nil {
		return marker{conv: ConventionParen, correct: strings.EqualFold(m[1], "x"), text: m[2]}, true
	}
	if m := bracketMarkerRe.FindStringSubmatch(l.Text); m != nil {
		return marker{conv: ConventionBracket, correct: strings.EqualFold(m[1], "x"), text: m[2]}, true
	}
	return marker{}, false
}

// isReasonHeader reports whether a line introduces the reason section.
// Only the canonical lowercase "# reason" counts; any deviation falls
// through as ordinary text rather than being fuzzy-matched.
func isReasonHeader(l SourceLine) bool {
	return !l.InFence && strings.TrimSpace(l.Text) == reasonHeader
}
