package overlay

import (
	"strings"
	"unicode/utf8"
)

// styledRune is one character of parsed markup with its resolved color.
type styledRune struct {
	r     rune
	color Color
}

// parseMarkup resolves [tag]...[/tag] markup into colored runes. Tags nest;
// unknown tags keep the enclosing color. A backslash before '[' yields a
// literal bracket.
func parseMarkup(s string, base Color, styles map[string]Color) []styledRune {
	out := make([]styledRune, 0, len(s))
	stack := []Color{base}
	names := []string{""}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		cur := stack[len(stack)-1]

		if r == '\\' && i+1 < len(s) && s[i+1] == '[' {
			out = append(out, styledRune{'[', cur})
			i += 2
			continue
		}
		if r == '[' {
			if name, closing, n := scanTag(s[i:]); n > 0 {
				if closing {
					if len(stack) > 1 && names[len(names)-1] == name {
						stack = stack[:len(stack)-1]
						names = names[:len(names)-1]
					}
				} else {
					c, ok := styles[name]
					if !ok {
						c = cur
					}
					stack = append(stack, c)
					names = append(names, name)
				}
				i += n
				continue
			}
		}
		out = append(out, styledRune{r, cur})
		i += size
	}
	return out
}

// scanTag reports whether s starts with a [name] or [/name] tag, where name
// is made of word characters. n is the tag length in bytes, 0 when s does
// not start with a tag.
func scanTag(s string) (name string, closing bool, n int) {
	j := 1
	if j < len(s) && s[j] == '/' {
		closing = true
		j++
	}
	start := j
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	if j == start || j >= len(s) || s[j] != ']' {
		return "", false, 0
	}
	return s[start:j], closing, j + 1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// StripMarkup returns s with markup tags removed and escapes resolved.
// Use it to print panel text somewhere that cannot show colors.
func StripMarkup(s string) string {
	rs := parseMarkup(s, Color{}, nil)
	var b strings.Builder
	b.Grow(len(rs))
	for _, r := range rs {
		b.WriteRune(r.r)
	}
	return b.String()
}

// Spans resolves markup into runs of uniformly colored text, for
// renderers other than a Canvas. Newlines are kept inside the runs and X
// counts runes from the start of s.
func Spans(s string, base Color, styles map[string]Color) []TextRun {
	runes := parseMarkup(s, base, styles)
	return buildRuns(runes, func(p string) float64 {
		return float64(utf8.RuneCountInString(p))
	})
}

// layoutText parses opt.Text and lays it out into lines. measure returns the
// advance width of plain text at opt.Size; lineHeight is the height of one
// line at opt.Size. Lines wider than opt.Width are wrapped at spaces, or
// mid-word when a single word does not fit.
func layoutText(opt TextOpt, measure func(string) float64, lineHeight float64) *FormattedText {
	runes := parseMarkup(opt.Text, opt.Color, opt.Styles)
	ft := &FormattedText{Opt: opt}

	var rows [][]styledRune
	start := 0
	for i, r := range runes {
		if r.r == '\n' {
			rows = append(rows, runes[start:i])
			start = i + 1
		}
	}
	rows = append(rows, runes[start:])

	var lines [][]styledRune
	for _, row := range rows {
		if opt.Width > 0 {
			lines = append(lines, wrapRow(row, opt.Width, measure)...)
		} else {
			lines = append(lines, row)
		}
	}

	for i, ln := range lines {
		tl := TextLine{Y: float64(i) * (lineHeight + opt.LineSpacing)}
		tl.Width = measure(plain(ln))
		tl.Runs = buildRuns(ln, measure)
		if tl.Width > ft.Width {
			ft.Width = tl.Width
		}
		ft.Lines = append(ft.Lines, tl)
	}
	if n := len(lines); n > 0 {
		ft.Height = float64(n)*lineHeight + float64(n-1)*opt.LineSpacing
	}
	return ft
}

// wrapRow greedily splits one row into lines no wider than maxW.
func wrapRow(row []styledRune, maxW float64, measure func(string) float64) [][]styledRune {
	if len(row) == 0 || measure(plain(row)) <= maxW {
		return [][]styledRune{row}
	}

	var lines [][]styledRune
	lineStart := 0
	lastSpace := -1
	for i := 0; i < len(row); i++ {
		if row[i].r == ' ' {
			lastSpace = i
		}
		if measure(plain(row[lineStart:i+1])) <= maxW {
			continue
		}
		switch {
		case lastSpace > lineStart:
			lines = append(lines, row[lineStart:lastSpace])
			lineStart = lastSpace + 1
		case i > lineStart:
			lines = append(lines, row[lineStart:i])
			lineStart = i
		default:
			// A single character wider than the wrap width gets its own line.
			lines = append(lines, row[lineStart:i+1])
			lineStart = i + 1
		}
		lastSpace = -1
	}
	if lineStart < len(row) {
		lines = append(lines, row[lineStart:])
	}
	return lines
}

// buildRuns groups consecutive runes of the same color.
func buildRuns(line []styledRune, measure func(string) float64) []TextRun {
	var runs []TextRun
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i].color == line[start].color {
			continue
		}
		runs = append(runs, TextRun{
			X:     measure(plain(line[:start])),
			Text:  plain(line[start:i]),
			Color: line[start].color,
		})
		start = i
	}
	return runs
}

func plain(rs []styledRune) string {
	var b strings.Builder
	b.Grow(len(rs))
	for _, r := range rs {
		b.WriteRune(r.r)
	}
	return b.String()
}
