package liveclock

// Slot is the addressable output for one data point's value. The clock
// manager writes into it directly; the painter only reads it. Slots are
// owned by a Board.
type Slot struct {
	key      string
	text     string
	writes   int
	detached bool
}

// Key returns the data point key the slot belongs to.
func (s *Slot) Key() string { return s.key }

// Text returns the current text.
func (s *Slot) Text() string { return s.text }

// Set replaces the text.
func (s *Slot) Set(text string) {
	s.text = text
	s.writes++
}

// Writes counts calls to Set.
func (s *Slot) Writes() int { return s.writes }

// Detached reports whether the slot has been removed from its board.
func (s *Slot) Detached() bool { return s.detached }

// Board holds one Slot per key for the current data set.
type Board struct {
	slots map[string]*Slot
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{slots: make(map[string]*Slot)}
}

// Ensure returns the slot for key, creating it if needed.
func (b *Board) Ensure(key string) *Slot {
	if s, ok := b.slots[key]; ok {
		return s
	}
	s := &Slot{key: key}
	b.slots[key] = s
	return s
}

// Lookup returns the slot for key, or nil.
func (b *Board) Lookup(key string) *Slot {
	return b.slots[key]
}

// Remove detaches and drops the slot for key.
func (b *Board) Remove(key string) {
	if s, ok := b.slots[key]; ok {
		s.detached = true
		delete(b.slots, key)
	}
}

// Retain drops every slot whose key is not in keep and returns the
// dropped keys.
func (b *Board) Retain(keep map[string]bool) []string {
	var dropped []string
	for k := range b.slots {
		if !keep[k] {
			dropped = append(dropped, k)
		}
	}
	for _, k := range dropped {
		b.Remove(k)
	}
	return dropped
}

// Clear detaches every slot.
func (b *Board) Clear() {
	b.Retain(nil)
}

// Len returns the number of slots.
func (b *Board) Len() int { return len(b.slots) }
