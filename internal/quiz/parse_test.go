package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const sampleQuiz = `What is the max size of an S3 object in GB?

- ( ) 1000
- (X) 5000
- ( ) 10000

# reason
The maximum size for a single S3 object is 5TB or 5000GB.

---

What are characteristics of effective leadership? (Multiple answers)

- [X] Ability to motivate a team
- [X] Clear communication
- [ ] Authoritarian decision making
- [ ] Short-term focus

# reason
Leadership requires motivation and clear communication.
`

func mustParse(t *testing.T, input string) []Question {
	t.Helper()
	qs, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return qs
}

func mustFail(t *testing.T, input string, kind DiagnosticKind) *Diagnostic {
	t.Helper()
	_, err := Parse(input)
	if err == nil {
		t.Fatalf("expected %v diagnostic, parse succeeded", kind)
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if d.Kind != kind {
		t.Fatalf("expected %v, got %v (%v)", kind, d.Kind, d)
	}
	return d
}

func TestParseSampleQuiz(t *testing.T) {
	qs := mustParse(t, sampleQuiz)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}

	q1 := qs[0]
	if q1.Kind != Single {
		t.Errorf("expected first question to be single choice, got %v", q1.Kind)
	}
	if !strings.Contains(q1.Text, "S3 object") {
		t.Errorf("unexpected question text: %q", q1.Text)
	}
	if len(q1.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(q1.Options))
	}
	var correct []AnswerOption
	for _, o := range q1.Options {
		if o.Correct {
			correct = append(correct, o)
		}
	}
	if len(correct) != 1 || correct[0].Text != "5000" {
		t.Errorf("expected single correct option %q, got %v", "5000", correct)
	}
	if !strings.Contains(q1.Reason, "5TB") {
		t.Errorf("unexpected reason: %q", q1.Reason)
	}

	q2 := qs[1]
	if q2.Kind != Multiple {
		t.Errorf("expected second question to be multiple choice, got %v", q2.Kind)
	}
	if len(q2.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q2.Options))
	}
	correct = nil
	for _, o := range q2.Options {
		if o.Correct {
			correct = append(correct, o)
		}
	}
	if len(correct) != 2 {
		t.Errorf("expected 2 correct options, got %d", len(correct))
	}
}

func TestParseMinimalScenario(t *testing.T) {
	qs := mustParse(t, "Q?\n\n- ( ) A\n- (X) B\n\n# reason\nBecause.\n")
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Text != "Q?" {
		t.Errorf("expected question text %q, got %q", "Q?", q.Text)
	}
	if q.Kind != Single {
		t.Errorf("expected single choice, got %v", q.Kind)
	}
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q.Options))
	}
	if q.Options[0].Text != "A" || q.Options[0].Correct {
		t.Errorf("unexpected first option: %+v", q.Options[0])
	}
	if q.Options[1].Text != "B" || !q.Options[1].Correct {
		t.Errorf("unexpected second option: %+v", q.Options[1])
	}
	if q.Reason != "Because." {
		t.Errorf("expected reason %q, got %q", "Because.", q.Reason)
	}
}

func TestParseManyBlocksInOrder(t *testing.T) {
	var sb strings.Builder
	const n = 7
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "Question %d?\n\n- (X) yes\n- ( ) no\n\n---\n", i)
	}

	qs := mustParse(t, sb.String())
	if len(qs) != n {
		t.Fatalf("expected %d questions, got %d", n, len(qs))
	}
	for i, q := range qs {
		want := fmt.Sprintf("Question %d?", i+1)
		if q.Text != want {
			t.Errorf("question %d: expected text %q, got %q", i, want, q.Text)
		}
	}
}

func TestParseLowercaseCorrectMarker(t *testing.T) {
	qs := mustParse(t, "Q?\n\n- (x) right\n- ( ) wrong\n")
	if !qs[0].Options[0].Correct {
		t.Error("expected lowercase x to mark the option correct")
	}
}

func TestParseReasonIsOptional(t *testing.T) {
	qs := mustParse(t, "Q?\n\n- (X) right\n- ( ) wrong\n")
	if qs[0].Reason != "" {
		t.Errorf("expected empty reason, got %q", qs[0].Reason)
	}
}

func TestParseMixedConventions(t *testing.T) {
	d := mustFail(t, "Q?\n\n- (X) A\n- [ ] B\n", InconsistentMarkerConvention)
	if d.Line != 4 {
		t.Errorf("expected diagnostic at line 4, got %d", d.Line)
	}
	if d.Content != "- [ ] B" {
		t.Errorf("expected offending line %q, got %q", "- [ ] B", d.Content)
	}
}

func TestParseMixedConventionsContext(t *testing.T) {
	input := `What is the answer?

- ( ) Wrong 1
- (X) Correct
- [ ] Wrong 2

# reason
This has mixed types.
`
	d := mustFail(t, input, InconsistentMarkerConvention)
	if d.Line != 5 {
		t.Errorf("expected diagnostic at line 5, got %d", d.Line)
	}
	if d.Block != 1 {
		t.Errorf("expected block 1, got %d", d.Block)
	}
	wantBefore := []string{"- ( ) Wrong 1", "- (X) Correct"}
	if len(d.ContextBefore) != 2 || d.ContextBefore[0] != wantBefore[0] || d.ContextBefore[1] != wantBefore[1] {
		t.Errorf("unexpected context before: %v", d.ContextBefore)
	}
	if len(d.ContextAfter) != 2 || d.ContextAfter[1] != "# reason" {
		t.Errorf("unexpected context after: %v", d.ContextAfter)
	}
}

func TestParseNoAnswers(t *testing.T) {
	d := mustFail(t, "This question has no answers?\n\n# reason\nNone given.\n", NoAnswersFound)
	if d.Line != 1 {
		t.Errorf("expected diagnostic at line 1, got %d", d.Line)
	}
}

func TestParseNoCorrectAnswer(t *testing.T) {
	input := `Which are colors?

- [ ] Red
- [ ] Blue
- [ ] Green
`
	d := mustFail(t, input, NoCorrectAnswerMarked)
	if d.Line != 3 {
		t.Errorf("expected diagnostic at first answer line 3, got %d", d.Line)
	}
}

func TestParseMissingQuestionText(t *testing.T) {
	d := mustFail(t, "\n- (X) A\n- ( ) B\n", MissingQuestionText)
	if d.Line != 2 {
		t.Errorf("expected diagnostic at first marker line 2, got %d", d.Line)
	}
}

func TestParseTooFewOptions(t *testing.T) {
	d := mustFail(t, "Q?\n\n- (X) only one\n", TooFewAnswerOptions)
	if d.Line != 3 {
		t.Errorf("expected diagnostic at line 3, got %d", d.Line)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		d := mustFail(t, input, EmptyInput)
		if d.Line != 1 {
			t.Errorf("input %q: expected line 1, got %d", input, d.Line)
		}
	}
}

func TestParseFailFastOnLaterBlock(t *testing.T) {
	input := "Q1?\n\n- (X) a\n- ( ) b\n\n---\n\nQ2?\n\n- ( ) a\n- ( ) b\n"
	d := mustFail(t, input, NoCorrectAnswerMarked)
	if d.Block != 2 {
		t.Errorf("expected failure in block 2, got %d", d.Block)
	}
	if d.Line != 10 {
		t.Errorf("expected diagnostic at line 10, got %d", d.Line)
	}
}

func TestParseFenceSuppressesDelimiter(t *testing.T) {
	input := "Q?\n\n```\n---\n- (X) not a marker\n```\n\n- (X) yes\n- ( ) no\n"
	qs := mustParse(t, input)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if !strings.Contains(q.Text, "---") || !strings.Contains(q.Text, "- (X) not a marker") {
		t.Errorf("expected fenced content kept verbatim in question text, got %q", q.Text)
	}
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q.Options))
	}
}

func TestParseMultilineOptionWithCode(t *testing.T) {
	input := "What prints hello?\n\n- (X)\n```go\nfmt.Println(\"hello\")\n```\n- ( ) nothing\n"
	qs := mustParse(t, input)
	q := qs[0]
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q.Options))
	}
	want := "```go\nfmt.Println(\"hello\")\n```"
	if q.Options[0].Text != want {
		t.Errorf("expected option text %q, got %q", want, q.Options[0].Text)
	}
	if !q.Options[0].Correct {
		t.Error("expected first option to be correct")
	}
}

func TestParseOptionContinuationPreservesBlankLines(t *testing.T) {
	input := "Q?\n\n- (X) first line\nsecond line\n\nthird paragraph\n- ( ) other\n"
	qs := mustParse(t, input)
	want := "first line\nsecond line\n\nthird paragraph"
	if got := qs[0].Options[0].Text; got != want {
		t.Errorf("expected option text %q, got %q", want, got)
	}
}

func TestParseReasonKeepsEmbeddedCode(t *testing.T) {
	input := "Q?\n\n- (X) a\n- ( ) b\n\n# reason\nSee:\n```\n# reason is inert here\n---\n```\n"
	qs := mustParse(t, input)
	r := qs[0].Reason
	if !strings.Contains(r, "# reason is inert here") || !strings.Contains(r, "---") {
		t.Errorf("expected fenced reason content verbatim, got %q", r)
	}
}

func TestDiagnosticError(t *testing.T) {
	_, err := Parse("Q?\n\n- (X) A\n- [ ] B\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error to mention line 4, got %q", err.Error())
	}
}

func TestDiagnosticReport(t *testing.T) {
	d := mustFail(t, "Q?\n\n- (X) A\n- [ ] B\n", InconsistentMarkerConvention)
	report := d.Report()
	if !strings.Contains(report, ">    4 | - [ ] B") {
		t.Errorf("expected report to mark line 4, got:\n%s", report)
	}
	if !strings.Contains(report, "mixed answer markers") {
		t.Errorf("expected report to carry the message, got:\n%s", report)
	}
}

func TestComputeStats(t *testing.T) {
	qs := mustParse(t, sampleQuiz)
	s := ComputeStats(qs)

	if s.Questions != 2 {
		t.Errorf("expected 2 questions, got %d", s.Questions)
	}
	if s.SingleChoice != 1 || s.MultipleChoice != 1 {
		t.Errorf("expected 1 single and 1 multiple, got %d/%d", s.SingleChoice, s.MultipleChoice)
	}
	if s.TotalOptions != 7 {
		t.Errorf("expected 7 total options, got %d", s.TotalOptions)
	}
	if s.AvgOptions != 3.5 {
		t.Errorf("expected average 3.5, got %v", s.AvgOptions)
	}
	if s.WithReason != 2 {
		t.Errorf("expected 2 questions with reason, got %d", s.WithReason)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	if s.Questions != 0 || s.AvgOptions != 0 {
		t.Errorf("unexpected stats for empty set: %+v", s)
	}
}
