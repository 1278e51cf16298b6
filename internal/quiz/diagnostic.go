package quiz

import (
	"fmt"
	"strings"
)

// DiagnosticKind is the violated-rule category of a parse failure.
type DiagnosticKind int

const (
	// EmptyInput means the input contains no question blocks at all.
	EmptyInput DiagnosticKind = iota
	// MissingQuestionText means a block starts with an answer marker
	// before any question text.
	MissingQuestionText
	// NoAnswersFound means a block has question text but no answer lines.
	NoAnswersFound
	// InconsistentMarkerConvention means ( ) and [ ] markers are mixed
	// within one block.
	InconsistentMarkerConvention
	// NoCorrectAnswerMarked means no option in the block is marked with X.
	NoCorrectAnswerMarked
	// TooFewAnswerOptions means a block has fewer than two options.
	TooFewAnswerOptions
)

func (k DiagnosticKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case MissingQuestionText:
		return "MissingQuestionText"
	case NoAnswersFound:
		return "NoAnswersFound"
	case InconsistentMarkerConvention:
		return "InconsistentMarkerConvention"
	case NoCorrectAnswerMarked:
		return "NoCorrectAnswerMarked"
	case TooFewAnswerOptions:
		return "TooFewAnswerOptions"
	}
	return "Unknown"
}

func (k DiagnosticKind) message() string {
	switch k {
	case EmptyInput:
		return "no questions found"
	case MissingQuestionText:
		return "no question text found before the first answer option"
	case NoAnswersFound:
		return "no answers found; expected '- (X) text' or '- [X] text'"
	case InconsistentMarkerConvention:
		return "mixed answer markers: cannot combine ( ) and [ ] in the same question"
	case NoCorrectAnswerMarked:
		return "no correct answer marked; use (X) or [X]"
	case TooFewAnswerOptions:
		return "a question needs at least two answer options"
	}
	return "invalid quiz block"
}

// Diagnostic is a structured, line-located parse error. The first
// Diagnostic aborts the whole parse; callers never receive a partial
// question list alongside one.
type Diagnostic struct {
	Kind          DiagnosticKind
	Line          int    // 1-based line number of the offending line
	Content       string // literal text of that line
	Block         int    // 1-based question block number
	ContextBefore []string
	ContextAfter  []string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Kind.message())
}

// Message returns the human-readable rule description without position.
func (d *Diagnostic) Message() string {
	return d.Kind.message()
}

// Report renders the diagnostic with its context window for display:
// the message, then the surrounding lines with the offending one marked.
func (d *Diagnostic) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "error at line %d (question %d): %s\n", d.Line, d.Block, d.Kind.message())

	first := d.Line - len(d.ContextBefore)
	for i, line := range d.ContextBefore {
		fmt.Fprintf(&b, "  %4d | %s\n", first+i, line)
	}
	fmt.Fprintf(&b, "> %4d | %s\n", d.Line, d.Content)
	for i, line := range d.ContextAfter {
		fmt.Fprintf(&b, "  %4d | %s\n", d.Line+1+i, line)
	}
	return b.String()
}

// diagnose builds a Diagnostic for line l of block b, collecting up to
// two context lines on each side from the block.
func (b Block) diagnose(kind DiagnosticKind, l SourceLine) *Diagnostic {
	idx := -1
	for i, bl := range b.Lines {
		if bl.Number == l.Number {
			idx = i
			break
		}
	}

	d := &Diagnostic{
		Kind:    kind,
		Line:    l.Number,
		Content: l.Text,
		Block:   b.Number,
	}
	if idx < 0 {
		return d
	}
	for i := max(0, idx-2); i < idx; i++ {
		d.ContextBefore = append(d.ContextBefore, b.Lines[i].Text)
	}
	for i := idx + 1; i < min(len(b.Lines), idx+3); i++ {
		d.ContextAfter = append(d.ContextAfter, b.Lines[i].Text)
	}
	return d
}
