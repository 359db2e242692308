package server

import "sync"

// historyEntry holds the encoded frames of one update pass.
type historyEntry struct {
	seq    uint64
	frames [][]byte
}

// History is a ring buffer of recently broadcast passes. A client that
// reconnects, or that loaded the page a few passes ago, is caught up from
// it; one that fell further behind has to reload.
type History struct {
	mu       sync.RWMutex
	entries  []historyEntry
	head     int // next write position
	count    int
	capacity int
	floor    uint64 // clients behind it cannot be caught up
}

// NewHistory creates a history holding up to capacity passes.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 64
	}
	return &History{
		entries:  make([]historyEntry, capacity),
		capacity: capacity,
	}
}

// Add records the frames of pass seq. Sequence numbers must increase.
func (h *History) Add(seq uint64, frames [][]byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.head] = historyEntry{seq: seq, frames: frames}
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}
}

// Since returns the frames of every pass after seq, oldest first. ok is
// false when some of them were already overwritten.
func (h *History) Since(seq uint64) (frames [][]byte, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if seq < h.floor {
		return nil, false
	}
	if h.count == 0 {
		return nil, true
	}
	oldest := h.entries[(h.head-h.count+h.capacity)%h.capacity].seq
	newest := h.entries[(h.head-1+h.capacity)%h.capacity].seq
	if seq >= newest {
		return nil, true
	}
	if seq+1 < oldest {
		return nil, false
	}
	for i := 0; i < h.count; i++ {
		e := h.entries[(h.head-h.count+i+h.capacity)%h.capacity]
		if e.seq > seq {
			frames = append(frames, e.frames...)
		}
	}
	return frames, true
}

// Clear drops every pass. Clients that applied less than seq can no longer
// be caught up.
func (h *History) Clear(seq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.entries)
	h.head, h.count = 0, 0
	h.floor = seq
}

// Len returns the number of passes held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
