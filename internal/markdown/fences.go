package markdown

import "strings"

type fenceMarker struct {
	char   byte
	length int
	lang   string
	indent string
}

// parseFenceMarker recognizes a line that is a code fence marker: a
// run of three or more backticks or tildes, optionally indented,
// optionally followed by an info string.
func parseFenceMarker(line string) (fenceMarker, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	var ch byte
	switch {
	case strings.HasPrefix(trimmed, "```"):
		ch = '`'
	case strings.HasPrefix(trimmed, "~~~"):
		ch = '~'
	default:
		return fenceMarker{}, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	return fenceMarker{
		char:   ch,
		length: n,
		lang:   strings.TrimSpace(trimmed[n:]),
		indent: line[:len(line)-len(trimmed)],
	}, true
}

// RepairFences closes a fence left open at end of input and rewrites a
// closing marker whose length differs from its opener. While a fence
// is open, markers of the other character and markers carrying an info
// string are literal content. Anything more ambiguous is left alone.
func RepairFences(text string) string {
	lines := strings.Split(text, "\n")
	var open *fenceMarker
	changed := false
	for i := range lines {
		m, ok := parseFenceMarker(lines[i])
		if !ok {
			continue
		}
		if open == nil {
			opener := m
			open = &opener
			continue
		}
		if m.char != open.char || m.lang != "" {
			continue
		}
		if m.length != open.length {
			lines[i] = m.indent + strings.Repeat(string(open.char), open.length)
			changed = true
		}
		open = nil
	}
	if open != nil {
		lines = append(lines, open.indent+strings.Repeat(string(open.char), open.length))
		changed = true
	}
	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}
