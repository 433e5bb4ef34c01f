package markdown

// Span is one inline code span within a line, backticks included.
// Columns are rune positions; EndCol is inclusive.
type Span struct {
	StartCol int
	EndCol   int
	Content  string
}

// DetectSpans finds backtick-delimited code spans in a line. An
// escaped backtick neither opens nor closes a span, and an opener with
// no closer yields no span at all.
func DetectSpans(line string) []Span {
	runes := []rune(line)
	var spans []Span
	i := 0
	for i < len(runes) {
		if runes[i] != '`' || (i > 0 && runes[i-1] == '\\') {
			i++
			continue
		}
		start := i
		i++
		for i < len(runes) {
			if runes[i] == '`' && runes[i-1] != '\\' {
				spans = append(spans, Span{
					StartCol: start,
					EndCol:   i,
					Content:  string(runes[start : i+1]),
				})
				i++
				break
			}
			i++
		}
	}
	return spans
}

// MaskLine blanks every code span so the grid pipeline never sees its
// content. Spaces keep column positions stable for restoration.
func MaskLine(line string) (string, []Span) {
	spans := DetectSpans(line)
	if len(spans) == 0 {
		return line, nil
	}
	runes := []rune(line)
	for _, s := range spans {
		for j := s.StartCol; j <= s.EndCol && j < len(runes); j++ {
			runes[j] = ' '
		}
	}
	return string(runes), spans
}

// RestoreLine writes span contents back into a masked line. It reports
// false when any span cell is no longer blank, meaning the repair
// moved something over the masked region.
func RestoreLine(line string, spans []Span) (string, bool) {
	if len(spans) == 0 {
		return line, true
	}
	runes := []rune(line)
	for _, s := range spans {
		for j, r := range []rune(s.Content) {
			pos := s.StartCol + j
			for pos >= len(runes) {
				runes = append(runes, ' ')
			}
			if runes[pos] != ' ' {
				return line, false
			}
			runes[pos] = r
		}
	}
	return string(runes), true
}
