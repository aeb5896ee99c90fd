package pages

import "sync"

// History is the in-process equivalent of browser history for a session. It
// stores encoded locations, not pages: back and forward re-decode the stored
// URL exactly the way a popstate handler would, so provenance carried in
// query parameters survives the round trip.
type History struct {
	mu       sync.Mutex
	entries  []Location
	idx      int
	listener func(Page)
}

// NewHistory creates a history positioned at the home location
func NewHistory() *History {
	return &History{
		entries: []Location{Encode(Home{})},
	}
}

// SetListener registers the handler invoked on back/forward navigation.
// Push and Replace never invoke it: writing history must not trigger a
// decode.
func (h *History) SetListener(fn func(Page)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listener = fn
}

// Push appends a new entry after the current position, discarding any
// forward entries.
func (h *History) Push(p Page) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.idx+1], Encode(p))
	h.idx = len(h.entries) - 1
}

// Replace overwrites the current entry in place
func (h *History) Replace(p Page) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.idx] = Encode(p)
}

// Back moves one entry back and reports the decoded page. Returns false at
// the start of history.
func (h *History) Back() (Page, bool) {
	h.mu.Lock()
	if h.idx == 0 {
		h.mu.Unlock()
		return nil, false
	}
	h.idx--
	page := DecodeLocation(h.entries[h.idx])
	listener := h.listener
	h.mu.Unlock()

	if listener != nil {
		listener(page)
	}
	return page, true
}

// Forward moves one entry forward and reports the decoded page. Returns
// false at the end of history.
func (h *History) Forward() (Page, bool) {
	h.mu.Lock()
	if h.idx >= len(h.entries)-1 {
		h.mu.Unlock()
		return nil, false
	}
	h.idx++
	page := DecodeLocation(h.entries[h.idx])
	listener := h.listener
	h.mu.Unlock()

	if listener != nil {
		listener(page)
	}
	return page, true
}

// Current re-reads the present location, the equivalent of decoding
// window.location on mount.
func (h *History) Current() Page {
	h.mu.Lock()
	defer h.mu.Unlock()
	return DecodeLocation(h.entries[h.idx])
}

// CurrentLocation returns the encoded location at the present position
func (h *History) CurrentLocation() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.idx]
}
