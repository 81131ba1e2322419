package session

// ChatLog is the append-only chat projection, scoped to one room occupancy.
type ChatLog struct {
	entries []ChatEntry
}

func (l *ChatLog) Append(e ChatEntry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the log in arrival order.
func (l *ChatLog) Entries() []ChatEntry {
	out := make([]ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *ChatLog) Len() int { return len(l.entries) }

func (l *ChatLog) Reset() { l.entries = nil }
