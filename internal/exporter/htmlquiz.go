package exporter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode"

	"github.com/gubarz/quizmd/internal/quiz"
)

//go:embed quiz.html.tmpl
var quizPage string

var quizTmpl = template.Must(template.New("quiz").Parse(quizPage))

type htmlAnswer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type htmlQuestion struct {
	Category string       `json:"category"`
	Text     string       `json:"text"`
	Type     string       `json:"type"`
	Answers  []htmlAnswer `json:"answers"`
	Reason   string       `json:"reason"`
}

type quizData struct {
	Title     string         `json:"title"`
	Questions []htmlQuestion `json:"questions"`
}

// ExportHTML writes a self-contained interactive quiz page with the
// question data embedded as JSON. It returns the size of the generated
// document in bytes.
func ExportHTML(w io.Writer, questions []quiz.Question, title string) (int, error) {
	data := quizData{Title: title}
	for _, q := range questions {
		data.Questions = append(data.Questions, toHTMLQuestion(q))
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("encode quiz data: %w", err)
	}

	var buf bytes.Buffer
	err = quizTmpl.Execute(&buf, struct {
		Title string
		Data  template.JS
	}{
		Title: title,
		Data:  template.JS(raw),
	})
	if err != nil {
		return 0, fmt.Errorf("render quiz page: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("write quiz page: %w", err)
	}
	return buf.Len(), nil
}

func toHTMLQuestion(q quiz.Question) htmlQuestion {
	category, text := splitCategory(q.Text)
	hq := htmlQuestion{
		Category: category,
		Text:     text,
		Type:     q.Kind.String(),
		Reason:   q.Reason,
	}
	for _, o := range q.Options {
		hq.Answers = append(hq.Answers, htmlAnswer{Text: o.Text, Correct: o.Correct})
	}
	return hq
}

// splitCategory peels an optional "CATEGORY: Question text" prefix off
// the question text. Only a short all-caps prefix counts, so ordinary
// sentences with colons pass through untouched.
func splitCategory(text string) (category, rest string) {
	head, tail, ok := strings.Cut(text, ":")
	if !ok {
		return "", text
	}
	head = strings.TrimSpace(head)
	if head == "" || len(head) >= 30 || !isAllUpper(head) {
		return "", text
	}
	return head, strings.TrimSpace(tail)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
