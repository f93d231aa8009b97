package markup

// history is a stack of full raster snapshots. A positive limit caps its
// depth by dropping the oldest entries.
type history struct {
	entries [][]byte
	limit   int
}

func (h *history) push(pix []byte) {
	snap := make([]byte, len(pix))
	copy(snap, pix)
	h.entries = append(h.entries, snap)
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		copy(h.entries, h.entries[drop:])
		for i := len(h.entries) - drop; i < len(h.entries); i++ {
			h.entries[i] = nil
		}
		h.entries = h.entries[:h.limit]
	}
}

func (h *history) pop() ([]byte, bool) {
	if len(h.entries) == 0 {
		return nil, false
	}
	last := len(h.entries) - 1
	snap := h.entries[last]
	h.entries[last] = nil
	h.entries = h.entries[:last]
	return snap, true
}

func (h *history) reset() {
	h.entries = nil
}

func (h *history) len() int {
	return len(h.entries)
}
