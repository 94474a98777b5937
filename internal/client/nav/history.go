package nav

import "sync"

// History is a stack of visited view paths. Replace overwrites the top
// entry, so Back never returns to a replaced view.
type History struct {
	mu      sync.Mutex
	entries []string
}

func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, path)
}

func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = path
}

// Redirect replaces the current entry with path. When the entry below is
// already path the current one is dropped instead, so a bounce never leaves
// the same view stacked twice.
func (h *History) Redirect(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.entries)
	if n > 1 && h.entries[n-2] == path {
		h.entries = h.entries[:n-1]
		return
	}
	h.entries[n-1] = path
}

// Back pops the current entry. It reports false when there is nowhere to go.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return h.entries[0], false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
