package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/quizmd/internal/config"
	"github.com/gubarz/quizmd/internal/quiz"
)

type phase int

const (
	phaseIntro phase = iota
	phaseQuestion
	phaseFeedback
	phaseResults
)

// playModel drives the interactive terminal quiz session.
type playModel struct {
	title     string
	questions []quiz.Question

	phase    phase
	index    int
	selected map[int]bool // option index -> picked, for the current question
	picks    []map[int]bool
	results  []bool

	progress  progress.Model
	width     int
	startedAt time.Time
	elapsed   time.Duration
}

func newPlayModel(questions []quiz.Question, title string) playModel {
	return playModel{
		title:     title,
		questions: questions,
		selected:  make(map[int]bool),
		picks:     make([]map[int]bool, len(questions)),
		results:   make([]bool, len(questions)),
		progress:  progress.New(progress.WithDefaultGradient()),
		width:     80,
	}
}

// Play runs the terminal quiz player over a validated question set.
func Play(questions []quiz.Question, title string) error {
	RefreshStyles()
	questions = shuffled(questions)
	p := tea.NewProgram(newPlayModel(questions, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// shuffled applies the configured shuffle settings, leaving the caller's
// slice untouched. Answer order within a question is shuffled per copy so
// correctness flags travel with their options.
func shuffled(questions []quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(questions))
	copy(out, questions)

	if config.GetShuffleQuestions() {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	if config.GetShuffleAnswers() {
		for i := range out {
			opts := make([]quiz.AnswerOption, len(out[i].Options))
			copy(opts, out[i].Options)
			rand.Shuffle(len(opts), func(a, b int) {
				opts[a], opts[b] = opts[b], opts[a]
			})
			out[i].Options = opts
		}
	}
	return out
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(48, msg.Width-4)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "q" {
			return m, tea.Quit
		}

		switch m.phase {
		case phaseIntro:
			if key == "enter" || key == " " {
				m.phase = phaseQuestion
				m.startedAt = time.Now()
			}
		case phaseQuestion:
			if n, ok := digitKey(key); ok {
				m.toggle(n - 1)
			} else if key == "enter" && len(m.picked()) > 0 {
				m.picks[m.index] = m.selected
				m.results[m.index] = answeredCorrectly(m.questions[m.index], m.selected)
				m.phase = phaseFeedback
			}
		case phaseFeedback:
			if key == "enter" || key == " " {
				if m.index+1 < len(m.questions) {
					m.index++
					m.selected = make(map[int]bool)
					m.phase = phaseQuestion
				} else {
					m.elapsed = time.Since(m.startedAt)
					m.phase = phaseResults
				}
			}
		case phaseResults:
			if key == "r" {
				restarted := newPlayModel(m.questions, m.title)
				restarted.width = m.width
				restarted.progress.Width = m.progress.Width
				restarted.phase = phaseQuestion
				restarted.startedAt = time.Now()
				return restarted, nil
			}
		}
	}
	return m, nil
}

// toggle flips option i of the current question. Single-choice questions
// keep at most one selection.
func (m *playModel) toggle(i int) {
	q := m.questions[m.index]
	if i < 0 || i >= len(q.Options) {
		return
	}
	if q.Kind == quiz.Single {
		on := !m.selected[i]
		m.selected = make(map[int]bool)
		if on {
			m.selected[i] = true
		}
		return
	}
	if m.selected[i] {
		delete(m.selected, i)
	} else {
		m.selected[i] = true
	}
}

func (m playModel) picked() []int {
	var out []int
	for i := range m.selected {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// answeredCorrectly reports whether the picked set matches exactly the
// correct option set of the question.
func answeredCorrectly(q quiz.Question, picked map[int]bool) bool {
	for i, o := range q.Options {
		if o.Correct != picked[i] {
			return false
		}
	}
	return true
}

func digitKey(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0'), true
	}
	return 0, false
}

func (m playModel) View() string {
	switch m.phase {
	case phaseIntro:
		return m.viewIntro()
	case phaseQuestion, phaseFeedback:
		return m.viewQuestion()
	default:
		return m.viewResults()
	}
}

func (m playModel) viewIntro() string {
	var b strings.Builder
	b.WriteString("\n  " + styles.Title.Render(m.title) + "\n\n")
	fmt.Fprintf(&b, "  %d questions\n\n", len(m.questions))
	b.WriteString("  " + styles.Dim.Render("enter start · q quit") + "\n")
	return b.String()
}

func (m playModel) viewQuestion() string {
	q := m.questions[m.index]
	feedback := m.phase == phaseFeedback

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s %s\n",
		styles.Dim.Render(fmt.Sprintf("question %d/%d", m.index+1, len(m.questions))),
		styles.Dim.Render(m.progress.ViewAs(float64(m.index)/float64(len(m.questions)))))
	b.WriteString("\n")
	b.WriteString(indentBody(q.Text, styles.Question) + "\n\n")

	if q.Kind == quiz.Multiple {
		b.WriteString("  " + styles.Dim.Render("select all that apply") + "\n\n")
	}

	for i, o := range q.Options {
		mark := "( )"
		if q.Kind == quiz.Multiple {
			mark = "[ ]"
		}
		if m.selected[i] {
			if q.Kind == quiz.Multiple {
				mark = "[x]"
			} else {
				mark = "(x)"
			}
		}

		style := styles.Option
		suffix := ""
		if feedback {
			switch {
			case o.Correct:
				style = styles.Correct
				suffix = " ✓"
			case m.selected[i]:
				style = styles.Wrong
				suffix = " ✗"
			default:
				style = styles.Dim
			}
		} else if m.selected[i] {
			style = styles.Selected
		}

		cursor := styles.Cursor.Render(fmt.Sprintf("%d", i+1))
		body := optionBody(o.Text, style)
		fmt.Fprintf(&b, "  %s %s %s%s\n", cursor, mark, body, style.Render(suffix))
	}

	if feedback {
		b.WriteString("\n")
		if m.results[m.index] {
			b.WriteString("  " + styles.Correct.Render("correct") + "\n")
		} else {
			b.WriteString("  " + styles.Wrong.Render("wrong") + "\n")
		}
		if q.Reason != "" {
			b.WriteString("\n" + indentBody(q.Reason, styles.Dim) + "\n")
		}
		b.WriteString("\n  " + styles.Dim.Render("enter continue · q quit") + "\n")
	} else {
		b.WriteString("\n  " + styles.Dim.Render("1-9 select · enter check · q quit") + "\n")
	}
	return b.String()
}

func (m playModel) viewResults() string {
	right := 0
	for _, ok := range m.results {
		if ok {
			right++
		}
	}
	pct := 0
	if len(m.results) > 0 {
		pct = right * 100 / len(m.results)
	}

	var b strings.Builder
	b.WriteString("\n  " + styles.Title.Render("Results") + "\n\n")
	score := fmt.Sprintf("%d/%d correct (%d%%)", right, len(m.results), pct)
	if pct >= 60 {
		b.WriteString("  " + styles.Correct.Render(score) + "\n")
	} else {
		b.WriteString("  " + styles.Wrong.Render(score) + "\n")
	}
	fmt.Fprintf(&b, "  %s\n\n", styles.Dim.Render("time: "+m.elapsed.Round(time.Second).String()))

	for i, q := range m.questions {
		if m.results[i] {
			continue
		}
		b.WriteString(indentBody(q.Text, styles.Question) + "\n")
		for _, o := range q.Options {
			if o.Correct {
				b.WriteString("    " + styles.Correct.Render(firstLine(o.Text)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + styles.Dim.Render("r restart · q quit") + "\n")
	return b.String()
}

// indentBody renders a multi-line field with two-space indentation,
// switching to the code style inside fenced regions.
func indentBody(text string, style interface{ Render(...string) string }) string {
	var b strings.Builder
	inCode := false
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		if quiz.IsFenceLine(line) {
			inCode = !inCode
			b.WriteString("  " + styles.Dim.Render(line))
			continue
		}
		if inCode {
			b.WriteString("    " + styles.Code.Render(line))
			continue
		}
		b.WriteString("  " + style.Render(line))
	}
	return b.String()
}

// optionBody renders an option's text inline; multi-line options show
// their first line with an ellipsis marker and are printed in full
// during feedback.
func optionBody(text string, style interface{ Render(...string) string }) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return style.Render(text)
	}
	return style.Render(firstLine(text)) + styles.Dim.Render(" …")
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
