package overlay

import (
	"fmt"
	"strings"
)

// Style tags used in log lines.
const (
	StyleTime  = "time"
	StyleInfo  = "info"
	StyleError = "error"
)

// LogStyles maps the log panel's markup tags to colors.
var LogStyles = map[string]Color{
	StyleTime:  RGB(127, 127, 127),
	StyleInfo:  RGB(255, 255, 255),
	StyleError: RGB(255, 0, 127),
}

const (
	logWidthFraction = 0.6
	logLineSpacing   = panelPad / 2
)

// FormatLogLine renders one log entry as panel markup:
// "[time]1.00[/time] [info]message[/info]". Errors use the error style.
func FormatLogLine(e LogEntry) string {
	style := StyleInfo
	if _, ok := e.Msg.(error); ok {
		style = StyleError
	}
	msg := Pretty(e.Msg)
	// A trailing backslash would escape the closing tag.
	if strings.HasSuffix(msg, `\`) {
		msg += " "
	}
	return fmt.Sprintf("[%s]%.2f[/%s] [%s]%s[/%s]",
		StyleTime, e.Time, StyleTime, style, msg, style)
}

// drawLog draws the log panel in the bottom-left corner. Lines are built from
// every entry before the buffer is pruned, so an entry expiring this frame is
// shown one last time.
func drawLog(c Canvas, logs *LogBuffer, now, retention float64) {
	entries := logs.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, FormatLogLine(e))
	}
	logs.Prune(now, retention)

	pinned(c, V(0, c.Height()), V(panelPad, -panelPad), func() {
		ft := c.FormatText(TextOpt{
			Text:        strings.Join(lines, "\n"),
			Pos:         V(panelPad, -panelPad),
			Anchor:      AnchorBotLeft,
			Size:        panelTextSize,
			Width:       c.Width() * logWidthFraction,
			LineSpacing: logLineSpacing,
			Color:       ColorWhite,
			Styles:      LogStyles,
		})

		c.DrawRect(RectOpt{
			Width:  ft.Width + panelPad*2,
			Height: ft.Height + panelPad*2,
			Anchor: AnchorBotLeft,
			Color:  panelColor,
			Radius: panelRadius,
		})
		c.DrawFormattedText(ft)
	})
}
