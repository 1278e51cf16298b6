package quiz

import "strings"

// SourceLine is one line of the input file. Lines are immutable after
// scanning; every later stage borrows them.
type SourceLine struct {
	Text    string
	Number  int  // 1-based line number in the input
	InFence bool // line belongs to a fenced code region
}

// Scan splits raw input into source lines and computes the fenced-code
// state for each one. It splits on \n and tolerates a trailing \r per
// line. A fence opens on a line of three or more backticks or tildes
// (optionally followed by a language tag) and closes on a line of three
// or more of the same character; both fence lines and everything between
// them are flagged InFence so that delimiter- and marker-like content
// inside code is treated as opaque text. Scan cannot fail.
func Scan(text string) []SourceLine {
	raw := strings.Split(text, "\n")
	lines := make([]SourceLine, len(raw))

	var fence byte // fence character while inside a fence, 0 outside
	for i, r := range raw {
		line := strings.TrimSuffix(r, "\r")
		inFence := false

		if fence == 0 {
			if c, ok := fenceOpen(line); ok {
				fence = c
				inFence = true
			}
		} else {
			inFence = true
			if fenceClose(line, fence) {
				fence = 0
			}
		}

		lines[i] = SourceLine{Text: line, Number: i + 1, InFence: inFence}
	}
	return lines
}

// IsFenceLine reports whether a line opens or closes a fenced code
// region. Exporters use it to switch rendering for embedded code that
// the parser preserved verbatim.
func IsFenceLine(line string) bool {
	_, ok := fenceOpen(strings.TrimSpace(line))
	return ok
}

// fenceOpen reports whether line starts a fence and returns the fence
// character. The line must begin with at least three backticks or tildes
// after trimming; anything after the run is treated as a language tag.
func fenceOpen(line string) (byte, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return 0, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return 0, false
	}
	return c, true
}

// fenceClose reports whether line closes a fence opened with char c:
// three or more of c and nothing else after trimming.
func fenceClose(line string, c byte) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != c {
			return false
		}
	}
	return true
}
