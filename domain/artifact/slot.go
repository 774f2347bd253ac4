package artifact

// Slot holds the single live handle of one kind. Replacing it creates the
// successor before releasing the predecessor, so the current handle is never
// a revoked one. Slots are used from the UI thread only.
type Slot struct {
	reg     *Registry
	kind    Kind
	current *Handle
}

// NewSlot returns an empty slot backed by reg.
func NewSlot(reg *Registry, kind Kind) *Slot {
	return &Slot{reg: reg, kind: kind}
}

// Current returns the live handle, or nil.
func (s *Slot) Current() *Handle {
	if s == nil {
		return nil
	}
	return s.current
}

// Replace stores data under a new handle and releases the previous one.
// prev is nil when the slot was empty.
func (s *Slot) Replace(data []byte, mediaType string) (next, prev *Handle) {
	next = s.reg.Create(s.kind, data, mediaType)
	prev = s.current
	s.current = next
	if prev != nil {
		s.reg.Release(prev)
	}
	return next, prev
}

// Clear releases the current handle and returns it.
func (s *Slot) Clear() *Handle {
	if s == nil || s.current == nil {
		return nil
	}
	prev := s.current
	s.current = nil
	s.reg.Release(prev)
	return prev
}
