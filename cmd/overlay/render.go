package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/phanxgames/overlay"
)

// renderMarkup writes overlay markup to w, coloring styled spans with the
// terminal profile and resolving bracket escapes.
func renderMarkup(w io.Writer, p termenv.Profile, markup string, styles map[string]overlay.Color) error {
	if p == termenv.Ascii {
		_, err := io.WriteString(w, overlay.StripMarkup(markup)+"\n")
		return err
	}
	var b strings.Builder
	for _, span := range overlay.Spans(markup, overlay.ColorWhite, styles) {
		if span.Color == overlay.ColorWhite {
			b.WriteString(span.Text)
			continue
		}
		b.WriteString(termenv.String(span.Text).Foreground(p.Color(hexColor(span.Color))).String())
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func hexColor(c overlay.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
