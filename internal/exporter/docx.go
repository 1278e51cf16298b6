package exporter

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/quizmd/internal/quiz"
)

// The generated document needs only a handful of WordprocessingML
// constructs (paragraphs, runs, a bottom border for the separator rule),
// so the package is assembled directly instead of going through a
// full OOXML library.

const (
	docxCheckboxChecked   = "☑"
	docxCheckboxUnchecked = "☐"

	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
)

// ExportDocx writes the questions as a Word document: numbered bold
// question text, checkbox-prefixed options, fenced code as monospace
// paragraphs, the reason as an italic block, and a horizontal rule
// between questions. Returns the number of questions written.
func ExportDocx(w io.Writer, questions []quiz.Question) (int, error) {
	zw := zip.NewWriter(w)

	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", buildDocumentXML(questions)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return 0, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return 0, fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finish docx package: %w", err)
	}
	return len(questions), nil
}

func buildDocumentXML(questions []quiz.Question) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for i, q := range questions {
		writeQuestionParas(&b, q, i+1)
		if i < len(questions)-1 {
			writeHorizontalRule(&b)
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeQuestionParas(b *strings.Builder, q quiz.Question, number int) {
	writeTextBlock(b, q.Text, run{text: fmt.Sprintf("%d. ", number), bold: true}, 0)

	for _, o := range q.Options {
		box := docxCheckboxUnchecked
		if o.Correct {
			box = docxCheckboxChecked
		}
		writeTextBlock(b, o.Text, run{text: box + " "}, 360)
	}

	if strings.TrimSpace(q.Reason) != "" {
		writePara(b, 0, run{text: "Reason: ", italic: true})
		writeTextBlock(b, q.Reason, run{}, 360)
	}

	// spacer between questions
	writePara(b, 0)
}

// writeTextBlock renders a multi-line field. The prefix run starts the
// first paragraph; fenced code lines become monospace paragraphs with
// the fence markers themselves dropped.
func writeTextBlock(b *strings.Builder, text string, prefix run, indent int) {
	lines := strings.Split(text, "\n")
	inCode := false
	first := true

	flushLine := func(line string, mono bool) {
		runs := make([]run, 0, 2)
		if first {
			if prefix.text != "" {
				runs = append(runs, prefix)
			}
			first = false
		}
		runs = append(runs, run{text: line, mono: mono})
		writePara(b, indent, runs...)
	}

	for _, line := range lines {
		if quiz.IsFenceLine(line) {
			inCode = !inCode
			continue
		}
		if inCode {
			flushLine(line, true)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		flushLine(line, false)
	}

	if first && prefix.text != "" {
		// field was empty apart from the prefix
		writePara(b, indent, prefix)
	}
}

type run struct {
	text   string
	bold   bool
	italic bool
	mono   bool
}

func writePara(b *strings.Builder, indent int, runs ...run) {
	b.WriteString(`<w:p>`)
	if indent > 0 {
		fmt.Fprintf(b, `<w:pPr><w:ind w:left="%d"/></w:pPr>`, indent)
	}
	for _, r := range runs {
		if r.text == "" {
			continue
		}
		b.WriteString(`<w:r><w:rPr>`)
		if r.bold {
			b.WriteString(`<w:b/>`)
		}
		if r.italic {
			b.WriteString(`<w:i/>`)
		}
		if r.mono {
			b.WriteString(`<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/>`)
		}
		b.WriteString(`</w:rPr><w:t xml:space="preserve">`)
		b.WriteString(escapeXML(r.text))
		b.WriteString(`</w:t></w:r>`)
	}
	b.WriteString(`</w:p>`)
}

func writeHorizontalRule(b *strings.Builder) {
	b.WriteString(`<w:p><w:pPr><w:pBdr>` +
		`<w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/>` +
		`</w:pBdr></w:pPr></w:p>`)
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
