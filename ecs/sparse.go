package ecs

// SparseSet is a packed component container keyed by entity ID, intended
// for tooling and sparse lookups outside the chunked store. Elements stay
// densely packed; removal swaps the last element into the vacated slot.
type SparseSet[T any] struct {
	packed        []T
	entityToIndex map[EntityID]int
	indexToEntity map[int]EntityID
}

// NewSparseSet creates an empty set.
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{
		entityToIndex: make(map[EntityID]int),
		indexToEntity: make(map[int]EntityID),
	}
}

// Insert stores value for the entity. An existing entry is overwritten in
// place.
func (s *SparseSet[T]) Insert(id EntityID, value T) {
	if idx, ok := s.entityToIndex[id]; ok {
		s.packed[idx] = value
		return
	}
	idx := len(s.packed)
	s.packed = append(s.packed, value)
	s.entityToIndex[id] = idx
	s.indexToEntity[idx] = id
}

// Get returns a pointer to the entity's element, or nil if absent.
func (s *SparseSet[T]) Get(id EntityID) *T {
	idx, ok := s.entityToIndex[id]
	if !ok {
		return nil
	}
	return &s.packed[idx]
}

// Has reports whether the entity has an element.
func (s *SparseSet[T]) Has(id EntityID) bool {
	_, ok := s.entityToIndex[id]
	return ok
}

// Remove deletes the entity's element by swapping the last packed element
// into its slot and fixing both maps. Absent entities are ignored.
func (s *SparseSet[T]) Remove(id EntityID) {
	idx, ok := s.entityToIndex[id]
	if !ok {
		return
	}
	lastIdx := len(s.packed) - 1
	lastID := s.indexToEntity[lastIdx]

	s.packed[idx] = s.packed[lastIdx]
	s.entityToIndex[lastID] = idx
	s.indexToEntity[idx] = lastID

	s.packed = s.packed[:lastIdx]
	delete(s.entityToIndex, id)
	delete(s.indexToEntity, lastIdx)
}

// EntityDestroyed removes the entity's element if present.
func (s *SparseSet[T]) EntityDestroyed(id EntityID) {
	s.Remove(id)
}

// Len returns the number of stored elements.
func (s *SparseSet[T]) Len() int { return len(s.packed) }

// ForEach visits every element. Mutating the set during iteration is not
// supported.
func (s *SparseSet[T]) ForEach(visit func(id EntityID, value *T)) {
	for i := range s.packed {
		visit(s.indexToEntity[i], &s.packed[i])
	}
}
