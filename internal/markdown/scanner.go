// Package markdown locates the parts of a Markdown document the
// diagram pipeline is allowed to touch. Code fences, ignore blocks and
// inline code spans are off limits; everything else is grouped into
// contiguous blocks that are repaired independently and spliced back.
package markdown

import "strings"

type lineContext int

const (
	ctxNormal lineContext = iota
	ctxFence
	ctxIgnored
	ctxMarker
)

// Ignore markers let authors exempt a region from processing:
//
//	<!-- gridfix:ignore --> ... <!-- /gridfix:ignore -->
//	<!-- gridfix-ignore-start --> ... <!-- gridfix-ignore-end -->
func isIgnoreStart(line string) bool {
	t := strings.TrimSpace(line)
	return strings.Contains(t, "<!-- gridfix:ignore -->") ||
		strings.Contains(t, "<!-- gridfix-ignore-start -->")
}

func isIgnoreEnd(line string) bool {
	t := strings.TrimSpace(line)
	return strings.Contains(t, "<!-- /gridfix:ignore -->") ||
		strings.Contains(t, "<!-- gridfix-ignore-end -->")
}

// lineContexts classifies every line of a document. Ignore markers win
// over fence markers; a line carrying an odd number of fence runs
// toggles the fence state and is itself untouchable.
func lineContexts(lines []string) []lineContext {
	out := make([]lineContext, len(lines))
	inFence := false
	inIgnore := false
	for i, line := range lines {
		switch {
		case isIgnoreStart(line):
			inIgnore = true
			out[i] = ctxMarker
			continue
		case isIgnoreEnd(line):
			inIgnore = false
			out[i] = ctxMarker
			continue
		}
		if inIgnore {
			out[i] = ctxIgnored
			continue
		}
		backticks := strings.Count(line, "```")
		tildes := strings.Count(line, "~~~")
		if backticks%2 == 1 || tildes%2 == 1 {
			inFence = !inFence
			out[i] = ctxMarker
			continue
		}
		if backticks > 0 || tildes > 0 {
			out[i] = ctxMarker
			continue
		}
		if inFence {
			out[i] = ctxFence
		} else {
			out[i] = ctxNormal
		}
	}
	return out
}

// Block is one contiguous run of non-blank plain lines that may hold a
// diagram. Lines are masked copies; Raw keeps the unmasked originals
// for the conservative fallback.
type Block struct {
	StartLine int
	Lines     []string
	Raw       []string
	Spans     [][]Span
}

// ExtractBlocks splits a document into diagram candidate blocks. Blank
// lines, fences and ignore regions separate blocks; inline code inside
// a block is masked with its spans recorded per line.
func ExtractBlocks(text string) []Block {
	return extractBlocks(strings.Split(text, "\n"))
}

func extractBlocks(lines []string) []Block {
	contexts := lineContexts(lines)
	var blocks []Block
	var cur *Block
	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
			cur = nil
		}
	}
	for i, line := range lines {
		if contexts[i] != ctxNormal || strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		masked, spans := MaskLine(line)
		if cur == nil {
			cur = &Block{StartLine: i}
		}
		cur.Lines = append(cur.Lines, masked)
		cur.Raw = append(cur.Raw, line)
		cur.Spans = append(cur.Spans, spans)
	}
	flush()
	return blocks
}

// TransformBlocks applies fn to every diagram block of a document and
// splices the results back, leaving fences, ignore regions and blank
// lines byte-for-byte intact. A block whose inline code cannot be
// restored after fn is kept as it was.
func TransformBlocks(text string, fn func(lines []string) []string) string {
	lines := strings.Split(text, "\n")
	blocks := extractBlocks(lines)
	if len(blocks) == 0 {
		return text
	}
	out := make([]string, 0, len(lines))
	next := 0
	for i := range blocks {
		b := &blocks[i]
		out = append(out, lines[next:b.StartLine]...)
		out = append(out, transformBlock(b, fn)...)
		next = b.StartLine + len(b.Raw)
	}
	out = append(out, lines[next:]...)
	return strings.Join(out, "\n")
}

func transformBlock(b *Block, fn func(lines []string) []string) []string {
	repaired := fn(b.Lines)
	hasSpans := false
	for _, s := range b.Spans {
		if len(s) > 0 {
			hasSpans = true
			break
		}
	}
	if !hasSpans {
		return repaired
	}
	// Restoration needs the per-line span positions, which a changed
	// line count invalidates.
	if len(repaired) != len(b.Lines) {
		return b.Raw
	}
	restored := make([]string, len(repaired))
	for i, line := range repaired {
		r, ok := RestoreLine(line, b.Spans[i])
		if !ok {
			return b.Raw
		}
		restored[i] = r
	}
	return restored
}
