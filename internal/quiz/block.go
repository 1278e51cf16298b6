package quiz

import "strings"

// Block is a contiguous run of source lines between delimiter lines. It
// holds a view over the scanned lines, never a copy of the text.
type Block struct {
	Lines  []SourceLine
	Number int // 1-based among kept blocks
}

// SplitBlocks partitions scanned lines into question blocks. A delimiter
// line is exactly three hyphens after trimming trailing whitespace, and
// only counts when it is not inside a fenced code region. Blocks without
// any non-blank line are dropped, so consecutive delimiters and the
// conventional trailing delimiter produce no spurious empty blocks.
// SplitBlocks never raises diagnostics; it only partitions.
func SplitBlocks(lines []SourceLine) []Block {
	var blocks []Block
	start := 0

	keep := func(end int) {
		run := lines[start:end]
		if !allBlank(run) {
			blocks = append(blocks, Block{Lines: run, Number: len(blocks) + 1})
		}
	}

	for i, l := range lines {
		if isDelimiter(l) {
			keep(i)
			start = i + 1
		}
	}
	keep(len(lines))

	return blocks
}

func isDelimiter(l SourceLine) bool {
	return !l.InFence && strings.TrimRight(l.Text, " \t") == "---"
}

func allBlank(lines []SourceLine) bool {
	for _, l := range lines {
		if strings.TrimSpace(l.Text) != "" {
			return false
		}
	}
	return true
}
