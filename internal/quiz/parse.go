package quiz

import "strings"

// Kind is the question type derived from the marker convention used in
// its block.
type Kind int

const (
	// Single is a single-choice question (paren markers).
	Single Kind = iota + 1
	// Multiple is a multiple-choice question (bracket markers).
	Multiple
)

func (k Kind) String() string {
	if k == Multiple {
		return "multiple"
	}
	return "single"
}

// AnswerOption is one answer of a question. Text may span several source
// lines, including embedded fenced code, and is preserved verbatim.
type AnswerOption struct {
	Text       string
	Correct    bool
	Convention Convention
}

// Question is one fully assembled and validated quiz question. Options
// keep their source order; the core never reorders them.
type Question struct {
	Text    string
	Options []AnswerOption
	Kind    Kind
	Reason  string
}

// Parse turns raw quiz markdown into validated questions. It returns
// either the complete question sequence in source order, or exactly one
// *Diagnostic describing the first structural problem (fail-fast: one
// bad block aborts the whole parse). Parse does no I/O and keeps no
// state between calls, so concurrent calls on different inputs are safe.
func Parse(text string) ([]Question, error) {
	lines := Scan(text)
	blocks := SplitBlocks(lines)

	if len(blocks) == 0 {
		content := ""
		if len(lines) > 0 {
			content = lines[0].Text
		}
		return nil, &Diagnostic{Kind: EmptyInput, Line: 1, Content: content}
	}

	questions := make([]Question, 0, len(blocks))
	for _, b := range blocks {
		q, err := assemble(b)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// assemble consumes one block and produces one question or the block's
// first diagnostic. It scans the lines once: before the first marker it
// accumulates question text, each marker opens a new option, the reason
// header switches to reason accumulation, and everything in between
// continues whichever field is open.
func assemble(b Block) (Question, error) {
	var (
		questionLines []string
		options       []AnswerOption
		conv          Convention
		firstMarker   SourceLine
		inReason      bool
		reasonLines   []string

		optOpen    bool
		optLines   []string
		optCorrect bool
	)

	closeOption := func() {
		if !optOpen {
			return
		}
		options = append(options, AnswerOption{
			Text:       joinField(optLines),
			Correct:    optCorrect,
			Convention: conv,
		})
		optOpen = false
		optLines = nil
	}

	for _, l := range b.Lines {
		if inReason {
			reasonLines = append(reasonLines, l.Text)
			continue
		}
		if isReasonHeader(l) {
			closeOption()
			inReason = true
			continue
		}
		if m, ok := classifyMarker(l); ok {
			if conv == 0 {
				conv = m.conv
				firstMarker = l
				if joinField(questionLines) == "" {
					return Question{}, b.diagnose(MissingQuestionText, l)
				}
			} else if m.conv != conv {
				return Question{}, b.diagnose(InconsistentMarkerConvention, l)
			}
			closeOption()
			optOpen = true
			optCorrect = m.correct
			if m.text != "" {
				optLines = append(optLines, m.text)
			}
			continue
		}
		if conv == 0 {
			questionLines = append(questionLines, l.Text)
			continue
		}
		if optOpen {
			optLines = append(optLines, l.Text)
		}
	}
	closeOption()

	q := Question{
		Text:    joinField(questionLines),
		Options: options,
		Kind:    kindOf(conv),
		Reason:  joinField(reasonLines),
	}
	return q, validate(b, q, firstMarker)
}

// validate enforces the invariants that need the whole assembled block:
// at least one answer line, at least one correct answer, and at least
// two options.
func validate(b Block, q Question, firstMarker SourceLine) error {
	if len(q.Options) == 0 {
		return b.diagnose(NoAnswersFound, firstNonBlank(b))
	}

	correct := 0
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
	}
	if correct == 0 {
		return b.diagnose(NoCorrectAnswerMarked, firstMarker)
	}

	if len(q.Options) < 2 {
		return b.diagnose(TooFewAnswerOptions, firstMarker)
	}
	return nil
}

func kindOf(c Convention) Kind {
	if c == ConventionBracket {
		return Multiple
	}
	return Single
}

func firstNonBlank(b Block) SourceLine {
	for _, l := range b.Lines {
		if strings.TrimSpace(l.Text) != "" {
			return l
		}
	}
	return b.Lines[0]
}

// joinField joins accumulated lines into a field body, trimming blank
// lines at the edges but preserving interior line breaks exactly (the
// downstream renderers interpret paragraph breaks and fenced code).
func joinField(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
