// Package tables normalizes well-formed Markdown pipe tables: cells
// are padded to uniform column widths and separator rows are rebuilt.
// Anything irregular (inconsistent column counts, wrapped continuation
// cells, escaped pipes) leaves the table untouched.
package tables

import "strings"

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignRight
	alignCenter
)

// Normalize rewrites the pipe tables found in lines and returns a new
// slice; non-table lines are carried over verbatim.
func Normalize(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for i := 0; i < len(lines); {
		if !isRow(lines[i]) {
			i++
			continue
		}
		j := i
		for j < len(lines) && isRow(lines[j]) {
			j++
		}
		if fixed, ok := normalizeTable(lines[i:j]); ok {
			copy(out[i:j], fixed)
		}
		i = j
	}
	return out
}

func isRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

func splitCells(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	return strings.Split(t, "|")
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		t := strings.TrimSpace(c)
		if t == "" {
			return false
		}
		for _, r := range strings.TrimSuffix(strings.TrimPrefix(t, ":"), ":") {
			if r != '-' {
				return false
			}
		}
		if !strings.Contains(t, "-") {
			return false
		}
	}
	return true
}

func alignOf(cell string) alignment {
	t := strings.TrimSpace(cell)
	left := strings.HasPrefix(t, ":")
	right := strings.HasSuffix(t, ":")
	switch {
	case left && right:
		return alignCenter
	case left:
		return alignLeft
	case right:
		return alignRight
	}
	return alignNone
}

// normalizeTable rebuilds one table. It reports false when the table
// is irregular and must be left alone.
func normalizeTable(rows []string) ([]string, bool) {
	if len(rows) < 2 {
		return nil, false
	}
	all := make([][]string, len(rows))
	cols := -1
	for i, r := range rows {
		if strings.Contains(r, `\|`) {
			return nil, false
		}
		cs := splitCells(r)
		if cols == -1 {
			cols = len(cs)
		} else if len(cs) != cols {
			return nil, false
		}
		all[i] = cs
	}
	if !isSeparator(all[1]) {
		return nil, false
	}

	aligns := make([]alignment, cols)
	for ci, c := range all[1] {
		aligns[ci] = alignOf(c)
	}

	// A data row mixing empty and filled cells is taken for a wrapped
	// continuation of the row above; joining those is out of scope.
	for ri := 2; ri < len(all); ri++ {
		if isSeparator(all[ri]) {
			return nil, false
		}
		empty, filled := 0, 0
		for _, c := range all[ri] {
			if strings.TrimSpace(c) == "" {
				empty++
			} else {
				filled++
			}
		}
		if empty > 0 && filled > 0 {
			return nil, false
		}
	}

	widths := make([]int, cols)
	for ri, cs := range all {
		if ri == 1 {
			continue
		}
		for ci, c := range cs {
			if w := len([]rune(strings.TrimSpace(c))); w > widths[ci] {
				widths[ci] = w
			}
		}
	}
	for ci := range widths {
		if widths[ci] < 3 {
			widths[ci] = 3
		}
	}

	fixed := make([]string, len(rows))
	for ri, cs := range all {
		indent := rows[ri][:strings.Index(rows[ri], "|")]
		if ri == 1 {
			fixed[ri] = indent + buildSeparator(widths, aligns)
			continue
		}
		fixed[ri] = indent + buildRow(cs, widths, aligns)
	}
	return fixed, true
}

func buildRow(cells []string, widths []int, aligns []alignment) string {
	var b strings.Builder
	b.WriteByte('|')
	for ci, c := range cells {
		content := strings.TrimSpace(c)
		pad := widths[ci] - len([]rune(content))
		b.WriteByte(' ')
		switch aligns[ci] {
		case alignRight:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(content)
		case alignCenter:
			b.WriteString(strings.Repeat(" ", pad/2))
			b.WriteString(content)
			b.WriteString(strings.Repeat(" ", pad-pad/2))
		default:
			b.WriteString(content)
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(" |")
	}
	return b.String()
}

func buildSeparator(widths []int, aligns []alignment) string {
	var b strings.Builder
	b.WriteByte('|')
	for ci, w := range widths {
		switch aligns[ci] {
		case alignLeft:
			b.WriteString(":" + strings.Repeat("-", w+1))
		case alignRight:
			b.WriteString(strings.Repeat("-", w+1) + ":")
		case alignCenter:
			b.WriteString(":" + strings.Repeat("-", w) + ":")
		default:
			b.WriteString(strings.Repeat("-", w+2))
		}
		b.WriteByte('|')
	}
	return b.String()
}
