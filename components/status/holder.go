package status

import "sync"

// Holder keeps the most recently reported health code.
//
// Remarks:
//   - Implementation is thread-safe.
type Holder struct {
	mu   sync.Mutex
	code Code
}

// NewHolder is a Holder initialization.
func NewHolder() *Holder {
	return &Holder{
		code: CodeInactive,
	}
}

// SetStatus stores the most recent health code.
func (h *Holder) SetStatus(code Code) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.code = code
}

// Get returns the most recently reported health code.
func (h *Holder) Get() Code {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.code
}
