// Package lookback matches multi-line patterns against the most recent
// lines of a document without retaining the whole history.
package lookback

import "strings"

// Window is a fixed-capacity ring buffer of recently seen lines.
// Lines are stored lower-cased since all matching is case-insensitive.
type Window struct {
	lines []string
	next  int // slot the next Push writes to
	count int
}

// New returns a Window remembering up to size lines. Sizes below 1 are
// treated as 1.
func New(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{lines: make([]string, size)}
}

// Push records line as the current (newest) line.
func (w *Window) Push(line string) {
	w.lines[w.next] = strings.ToLower(line)
	w.next = (w.next + 1) % len(w.lines)
	if w.count < len(w.lines) {
		w.count++
	}
}

// Len returns how many lines are currently held.
func (w *Window) Len() int {
	return w.count
}

// back returns the line k positions before the current one (k=0 is the
// current line), lower-cased.
func (w *Window) back(k int) (string, bool) {
	if k < 0 || k >= w.count {
		return "", false
	}
	idx := (w.next - 1 - k + 2*len(w.lines)) % len(w.lines)
	return w.lines[idx], true
}

// Match checks the sets against the most recent lines. The last set is
// tested against the current line, the one before it against the previous
// line, and so on. A set matches when its line contains every substring
// in it, ignoring case. Not enough history means no match.
func (w *Window) Match(sets ...[]string) bool {
	if len(sets) == 0 || len(sets) > w.count {
		return false
	}
	for i := len(sets) - 1; i >= 0; i-- {
		line, _ := w.back(len(sets) - 1 - i)
		if !containsAll(line, sets[i]) {
			return false
		}
	}
	return true
}

func containsAll(line string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(line, strings.ToLower(s)) {
			return false
		}
	}
	return true
}
