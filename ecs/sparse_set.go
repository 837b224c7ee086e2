package ecs

// SparseSet stores one value per entity slot id with O(1) lookup and a
// dense array for iteration.
type SparseSet[T any] struct {
	denseIDs    []entityID
	denseValues []T
	sparse      []int
}

// Has returns true if the slot id exists in the set.
func (s *SparseSet[T]) Has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

// Get returns the value stored for id.
func (s *SparseSet[T]) Get(id entityID) (T, bool) {
	var zero T
	if !s.Has(id) {
		return zero, false
	}
	return s.denseValues[s.sparse[id-1]], true
}

// Set inserts or replaces the value for id.
func (s *SparseSet[T]) Set(id entityID, v T) {
	if s == nil || id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

// Remove deletes the value for id, swapping the last element into its slot.
func (s *SparseSet[T]) Remove(id entityID) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = lastID
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}

// ids returns a copy of the dense id list so callers may mutate the set
// while iterating.
func (s *SparseSet[T]) ids() []entityID {
	if s == nil || len(s.denseIDs) == 0 {
		return nil
	}
	return append([]entityID(nil), s.denseIDs...)
}
