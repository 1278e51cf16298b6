package exporter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gubarz/quizmd/internal/quiz"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
	codeRe   = regexp.MustCompile("`(.+?)`")
	linkRe   = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
)

// ExportFlashcardHero writes questions as Flashcard Hero TSV, one
// front<TAB>back line per question, and returns the number of cards.
// The back holds the correct answers only, joined by "; " when a
// question has several.
func ExportFlashcardHero(w io.Writer, questions []quiz.Question) (int, error) {
	for _, q := range questions {
		front := heroText(q.Text)
		back := heroBack(q)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", front, back); err != nil {
			return 0, fmt.Errorf("write card: %w", err)
		}
	}
	return len(questions), nil
}

func heroBack(q quiz.Question) string {
	var correct []string
	for _, o := range q.Options {
		if o.Correct {
			correct = append(correct, heroText(o.Text))
		}
	}
	return strings.Join(correct, "; ")
}

// heroText prepares a field for a TSV cell: inline markdown stripped,
// whitespace collapsed to single spaces, tabs removed.
func heroText(text string) string {
	text = stripMarkdown(text)
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "\t", " ")
}

// stripMarkdown removes inline markdown formatting (bold, italic, code
// spans, links), keeping the visible text.
func stripMarkdown(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return text
}
