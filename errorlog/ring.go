package errorlog

import "strings"

// Ring is a fixed-capacity, in-memory ring of formatted log lines: at
// most Capacity lines are retained (oldest discarded first), and each
// line is truncated to LineWidth characters with a trailing "..." when
// it would otherwise overflow.
type Ring struct {
	Capacity  int
	LineWidth int
	lines     []string
}

// NewRing constructs a ring holding at most capacity lines of at most
// lineWidth characters each.
func NewRing(capacity, lineWidth int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	if lineWidth < 1 {
		lineWidth = 1
	}
	return &Ring{Capacity: capacity, LineWidth: lineWidth}
}

// Push appends a message, truncating it to LineWidth and evicting the
// oldest line if the ring is already at Capacity.
func (r *Ring) Push(msg string) {
	r.lines = append(r.lines, truncate(msg, r.LineWidth))
	if len(r.lines) > r.Capacity {
		r.lines = r.lines[len(r.lines)-r.Capacity:]
	}
}

// Lines returns a copy of the currently retained lines, oldest first.
func (r *Ring) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of lines currently retained.
func (r *Ring) Len() int {
	return len(r.lines)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	const suffix = "..."
	if width <= len(suffix) {
		return s[:width]
	}
	return s[:width-len(suffix)] + suffix
}

// Dump joins the retained lines with newlines. The callback is not fed
// this text; it receives each message on its own.
func (r *Ring) Dump() string {
	return strings.Join(r.lines, "\n")
}
