package overlay

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// SlogHandler is a slog.Handler that adds records to a LogBuffer so
// application logs show up in the log panel. Records at slog.LevelError and
// above are stored as errors and drawn in the error style. Attributes are
// appended to the message in slog's text format.
type SlogHandler struct {
	buf   *LogBuffer
	level slog.Leveler
	text  slog.Handler
	out   *lockedBuffer
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

// NewSlogHandler returns a handler feeding buf. opts may be nil; its Level,
// AddSource and ReplaceAttr are honored.
func NewSlogHandler(buf *LogBuffer, opts *slog.HandlerOptions) *SlogHandler {
	if buf == nil {
		panic("overlay: NewSlogHandler with nil LogBuffer")
	}
	var o slog.HandlerOptions
	if opts != nil {
		o = *opts
	}
	level := o.Level
	if level == nil {
		level = slog.LevelInfo
	}
	user := o.ReplaceAttr
	o.Level = slog.LevelDebug - 4 // filtering happens in Enabled
	o.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		// Time is the panel's own column; level shows through the style.
		if len(groups) == 0 {
			switch a.Key {
			case slog.TimeKey, slog.LevelKey, slog.MessageKey:
				return slog.Attr{}
			case "error":
				a.Key = "err"
			}
		}
		if user != nil {
			return user(groups, a)
		}
		return a
	}
	out := &lockedBuffer{}
	return &SlogHandler{
		buf:   buf,
		level: level,
		text:  slog.NewTextHandler(&out.b, &o),
		out:   out,
	}
}

// Enabled reports whether level meets the handler's minimum level.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r and adds it to the log buffer.
func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.out.mu.Lock()
	h.out.b.Reset()
	err := h.text.Handle(ctx, r)
	attrs := strings.TrimSpace(h.out.b.String())
	h.out.mu.Unlock()
	if err != nil {
		return err
	}

	msg := r.Message
	if attrs != "" {
		if msg != "" {
			msg += " "
		}
		msg += attrs
	}
	if r.Level >= slog.LevelError {
		h.buf.Error(errors.New(msg))
	} else {
		h.buf.Log(msg)
	}
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.text = h.text.WithAttrs(attrs)
	return &c
}

// WithGroup returns a handler that nests later attributes under name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.text = h.text.WithGroup(name)
	return &c
}
