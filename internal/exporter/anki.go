// Package exporter turns a validated question set into the supported
// output formats. Exporters never re-check structural invariants (the
// parser guarantees them) but may apply format-specific limits of their
// own, such as the five-option cap of the Anki AllInOne note type.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/quizmd/internal/quiz"
)

// MaxAllInOneOptions is the option cap of the AllInOne note type.
// Questions with more options are truncated; the CLI warns about them.
const MaxAllInOneOptions = 5

var allInOneHeaders = []string{
	"#separator:Semicolon",
	"#html:false",
	"#notetype:AllInOne (kprim, mc, sc)",
	"#tags:quiz generated",
}

var basicHeaders = []string{
	"#separator:Semicolon",
	"#html:false",
	"#notetype:Basic",
	"#tags:quiz recall",
}

// ExportAnkiAllInOne writes questions as AllInOne (quiz) CSV and returns
// the number of cards written. Row layout:
// Question;Title;QType;Q_1..Q_5;Answers;Sources;Extra1;Tags.
func ExportAnkiAllInOne(w io.Writer, questions []quiz.Question) (int, error) {
	if err := writeHeaders(w, allInOneHeaders); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, q := range questions {
		if err := cw.Write(allInOneRow(q)); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(questions), nil
}

// ExportAnkiBasic writes questions as Basic (recall) CSV rows of
// Front;Back;Tags and returns the number of cards written.
func ExportAnkiBasic(w io.Writer, questions []quiz.Question) (int, error) {
	if err := writeHeaders(w, basicHeaders); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, q := range questions {
		if err := cw.Write([]string{flattenText(q.Text), basicBack(q), "recall"}); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(questions), nil
}

// CountOverOptionLimit returns how many questions exceed the AllInOne
// option cap, for the CLI's truncation warning.
func CountOverOptionLimit(questions []quiz.Question) int {
	n := 0
	for _, q := range questions {
		if len(q.Options) > MaxAllInOneOptions {
			n++
		}
	}
	return n
}

func writeHeaders(w io.Writer, headers []string) error {
	for _, h := range headers {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

func allInOneRow(q quiz.Question) []string {
	row := make([]string, 0, 12)
	row = append(row, flattenText(q.Text))
	row = append(row, "") // Title
	row = append(row, allInOneQType(q))

	for i := 0; i < MaxAllInOneOptions; i++ {
		if i < len(q.Options) {
			row = append(row, flattenText(q.Options[i].Text))
		} else {
			row = append(row, "")
		}
	}

	row = append(row, answersBinary(q))
	row = append(row, "") // Sources
	row = append(row, flattenText(q.Reason))
	row = append(row, "quiz")
	return row
}

// allInOneQType maps a question to the note type's QType field:
// "2" for single choice (or exactly one correct answer), "1" otherwise.
func allInOneQType(q quiz.Question) string {
	correct := 0
	for _, o := range q.Options {
		if o.Correct {
			correct++
		}
	}
	if q.Kind == quiz.Single || correct == 1 {
		return "2"
	}
	return "1"
}

// answersBinary renders correctness over the five AllInOne slots as a
// space-joined binary string, e.g. "1 0 1 0 0".
func answersBinary(q quiz.Question) string {
	bits := make([]string, MaxAllInOneOptions)
	for i := range bits {
		bits[i] = "0"
	}
	for i, o := range q.Options {
		if i >= MaxAllInOneOptions {
			break
		}
		if o.Correct {
			bits[i] = "1"
		}
	}
	return strings.Join(bits, " ")
}

func basicBack(q quiz.Question) string {
	var correct []string
	for _, o := range q.Options {
		if o.Correct {
			correct = append(correct, flattenText(o.Text))
		}
	}

	var back string
	if len(correct) == 1 {
		back = "Answer: " + correct[0]
	} else {
		back = "Answers: " + strings.Join(correct, ", ")
	}

	if strings.TrimSpace(q.Reason) != "" {
		back += "<br><br>Explanation: " + flattenText(q.Reason)
	}
	return back
}

// flattenText collapses a multi-line field into a single
// whitespace-normalized line for CSV cells.
func flattenText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
