package overlay

import "sync"

// LogEntry is one message shown on the log panel. Time is the application
// time (Clock.Time) at which it was logged; Msg may be any value, including
// an error.
type LogEntry struct {
	Time float64
	Msg  any
}

// LogBuffer is the shared log store read and pruned by the log panel.
// Entries are kept newest first. It is the one overlay type safe for use from
// several goroutines, since log calls may come from anywhere.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
	max     int
	clock   Clock
}

// NewLogBuffer returns a buffer stamping entries with clock and keeping at
// most max entries (DefaultLogMax when max <= 0).
func NewLogBuffer(clock Clock, max int) *LogBuffer {
	if max <= 0 {
		max = DefaultLogMax
	}
	return &LogBuffer{clock: clock, max: max}
}

// Log records msg at the current clock time.
func (b *LogBuffer) Log(msg any) {
	var now float64
	if b.clock != nil {
		now = b.clock.Time()
	}
	b.Add(LogEntry{Time: now, Msg: msg})
}

// Error records err; the panel renders it in the error style.
func (b *LogBuffer) Error(err error) {
	b.Log(err)
}

// Add inserts e as the newest entry, dropping the oldest beyond the cap.
func (b *LogBuffer) Add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, LogEntry{})
	copy(b.entries[1:], b.entries)
	b.entries[0] = e
	if len(b.entries) > b.max {
		for i := b.max; i < len(b.entries); i++ {
			b.entries[i] = LogEntry{}
		}
		b.entries = b.entries[:b.max]
	}
}

// Entries returns a copy of the entries, newest first.
func (b *LogBuffer) Entries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Prune removes, in place, every entry whose age at now is not below
// retention seconds. It returns the number removed.
func (b *LogBuffer) Prune(now, retention float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.entries[:0]
	for _, e := range b.entries {
		if now-e.Time < retention {
			kept = append(kept, e)
		}
	}
	removed := len(b.entries) - len(kept)
	for i := len(kept); i < len(b.entries); i++ {
		b.entries[i] = LogEntry{}
	}
	b.entries = kept
	return removed
}

// Clear removes every entry.
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.entries)
	b.entries = b.entries[:0]
}
