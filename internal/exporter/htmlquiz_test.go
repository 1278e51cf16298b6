package exporter

import (
	"bytes"
	"strings"
	"testing"
)

func TestExportHTML(t *testing.T) {
	var buf bytes.Buffer
	size, err := ExportHTML(&buf, sampleQuestions(), "Geography & More")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if size != buf.Len() {
		t.Errorf("reported size %d, buffer has %d bytes", size, buf.Len())
	}

	out := buf.String()
	if !strings.Contains(out, "<title>Geography &amp; More</title>") {
		t.Error("expected escaped title in head")
	}
	if !strings.Contains(out, "const QUIZ_DATA = ") {
		t.Error("expected embedded quiz data")
	}
	if !strings.Contains(out, `"type":"single"`) || !strings.Contains(out, `"type":"multiple"`) {
		t.Error("expected both question types in the data")
	}
	if !strings.Contains(out, "What is the capital of France?") {
		t.Error("expected question text in the data")
	}
	if !strings.Contains(out, `"correct":true`) {
		t.Error("expected correctness flags in the data")
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected a standalone HTML document")
	}
}

func TestSplitCategory(t *testing.T) {
	tests := []struct {
		text     string
		category string
		rest     string
	}{
		{"AWS: What is S3?", "AWS", "What is S3?"},
		{"NETWORKING: Which port?", "NETWORKING", "Which port?"},
		{"What is this: a question?", "", "What is this: a question?"},
		{"No colon here", "", "No colon here"},
		{"lowercase: not a category", "", "lowercase: not a category"},
		{"THIS IS A VERY LONG ALL CAPS PREFIX OVER THE LIMIT: text", "", "THIS IS A VERY LONG ALL CAPS PREFIX OVER THE LIMIT: text"},
	}
	for _, tt := range tests {
		cat, rest := splitCategory(tt.text)
		if cat != tt.category || rest != tt.rest {
			t.Errorf("splitCategory(%q) = (%q, %q), expected (%q, %q)",
				tt.text, cat, rest, tt.category, tt.rest)
		}
	}
}
