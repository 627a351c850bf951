// Package sparse provides a sparse set over small uint32 universes.
//
// The set supports O(1) insertion, membership testing, and clearing,
// with a dense slice that preserves insertion order. NFA simulation
// relies on both properties: membership makes epsilon-closure terminate
// on cyclic automata, and insertion order keeps active-state scans
// deterministic.
package sparse

// Set is a sparse set of uint32 values below a fixed capacity.
// The sparse array maps values to indices in the dense array; a value is
// a member iff its slot points at a dense entry holding it back.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// NewSet creates a sparse set holding values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set and reports whether it was newly added.
// Values at or above capacity are rejected.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if value >= uint32(len(s.sparse)) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1) time
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order.
// The slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
