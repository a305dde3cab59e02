// Package ecs implements the creature storage layer: an archetype registry
// with chunked SoA storage and stable entity IDs, plus a generic sparse-set
// container for tooling.
package ecs

import (
	"sort"
	"unsafe"
)

// EntityID is a stable handle to a stored entity.
type EntityID uint32

// InvalidEntity is the sentinel returned when creation fails or a reference
// is dead.
const InvalidEntity EntityID = ^EntityID(0)

// ComponentID identifies a registered component type.
type ComponentID uint32

// ArchetypeID identifies a registered archetype.
type ArchetypeID int32

// InvalidArchetype is the sentinel for failed archetype registration.
const InvalidArchetype ArchetypeID = -1

// ChunkDataSize is the byte capacity of one chunk's component storage,
// tuned for cache locality. It is a parameter, not a contract.
const ChunkDataSize = 16 * 1024

// DefaultMaxEntities bounds the free-ID pool of a store built with
// NewStore.
const DefaultMaxEntities = 16384

// EntityLocation records where an entity's components live.
type EntityLocation struct {
	Archetype  ArchetypeID
	ChunkIndex int
	Index      int
	Valid      bool
}

// Chunk is a fixed-size block holding up to capacity entities of one
// archetype in SoA layout, with an entity-ID side table per slot. Live
// entities always occupy slots [0, count).
type Chunk struct {
	data     []byte
	entities []EntityID
	count    int
}

// Count returns the number of live entities in the chunk.
func (c *Chunk) Count() int { return c.count }

// Entity returns the entity ID stored at a slot, or InvalidEntity for
// out-of-range slots.
func (c *Chunk) Entity(index int) EntityID {
	if index < 0 || index >= len(c.entities) {
		return InvalidEntity
	}
	return c.entities[index]
}

// archetype groups the storage for one component-set signature.
type archetype struct {
	id         ArchetypeID
	components []ComponentID // registration order
	sizes      []int
	offsets    []int // SoA base offset of each component within a chunk
	entitySize int
	capacity   int
	chunks     []*Chunk
}

// componentSlot returns the position of comp in the archetype, or -1.
func (a *archetype) componentSlot(comp ComponentID) int {
	for i, c := range a.components {
		if c == comp {
			return i
		}
	}
	return -1
}

// Store owns component registration, archetypes, chunks, and the entity
// location table. A store is single-owner: it is not safe for concurrent
// mutation.
type Store struct {
	componentSizes []int

	archetypes []*archetype
	bySig      map[uint32][]ArchetypeID // signature hash -> candidates

	locations []EntityLocation
	freeIDs   []EntityID // FIFO; head advances on pop
	freeHead  int
	living    int
}

// NewStore creates a store with a free-ID pool of [0, maxEntities).
// Non-positive maxEntities uses DefaultMaxEntities.
func NewStore(maxEntities int) *Store {
	if maxEntities <= 0 {
		maxEntities = DefaultMaxEntities
	}
	s := &Store{
		bySig:     make(map[uint32][]ArchetypeID),
		locations: make([]EntityLocation, maxEntities),
		freeIDs:   make([]EntityID, maxEntities),
	}
	for i := range s.freeIDs {
		s.freeIDs[i] = EntityID(i)
	}
	return s
}

// RegisterComponent registers a component type of the given byte size and
// returns its ID. Sizes must be positive.
func (s *Store) RegisterComponent(size int) ComponentID {
	if size <= 0 {
		size = 1
	}
	id := ComponentID(len(s.componentSizes))
	s.componentSizes = append(s.componentSizes, size)
	return id
}

// signatureHash hashes a component-ID multiset with Knuth's multiplicative
// constant so permutations of the same set collide intentionally.
func signatureHash(sorted []ComponentID) uint32 {
	var h uint32
	for _, id := range sorted {
		h = h*31 ^ (uint32(id)+1)*2654435761
	}
	return h
}

func sameMultiset(a, b []ComponentID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RegisterArchetype registers (or finds) the archetype for a component set.
// Two calls with the same multiset of component IDs return the same ID
// regardless of order. Registration allocates one initial chunk. Returns
// InvalidArchetype for empty sets, unknown components, or entities too
// large for a chunk.
func (s *Store) RegisterArchetype(components ...ComponentID) ArchetypeID {
	if len(components) == 0 {
		return InvalidArchetype
	}
	for _, c := range components {
		if int(c) >= len(s.componentSizes) {
			return InvalidArchetype
		}
	}

	sorted := make([]ComponentID, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	sig := signatureHash(sorted)
	for _, id := range s.bySig[sig] {
		a := s.archetypes[id]
		cand := make([]ComponentID, len(a.components))
		copy(cand, a.components)
		sort.Slice(cand, func(i, j int) bool { return cand[i] < cand[j] })
		if sameMultiset(cand, sorted) {
			return id
		}
	}

	a := &archetype{
		id:         ArchetypeID(len(s.archetypes)),
		components: append([]ComponentID(nil), components...),
	}
	for _, c := range a.components {
		a.sizes = append(a.sizes, s.componentSizes[c])
		a.entitySize += s.componentSizes[c]
	}
	if a.entitySize > ChunkDataSize {
		return InvalidArchetype
	}
	a.capacity = ChunkDataSize / a.entitySize

	// SoA column offsets within a chunk.
	a.offsets = make([]int, len(a.components))
	running := 0
	for i, sz := range a.sizes {
		a.offsets[i] = running * a.capacity
		running += sz
	}

	a.chunks = append(a.chunks, newChunk(a))
	s.archetypes = append(s.archetypes, a)
	s.bySig[sig] = append(s.bySig[sig], a.id)
	return a.id
}

func newChunk(a *archetype) *Chunk {
	return &Chunk{
		data:     make([]byte, ChunkDataSize),
		entities: make([]EntityID, a.capacity),
	}
}

// ArchetypeCapacity returns the per-chunk entity capacity, or 0 for an
// invalid archetype.
func (s *Store) ArchetypeCapacity(id ArchetypeID) int {
	a := s.archetypeByID(id)
	if a == nil {
		return 0
	}
	return a.capacity
}

// ChunkCount returns the number of chunks allocated for an archetype.
func (s *Store) ChunkCount(id ArchetypeID) int {
	a := s.archetypeByID(id)
	if a == nil {
		return 0
	}
	return len(a.chunks)
}

func (s *Store) archetypeByID(id ArchetypeID) *archetype {
	if id < 0 || int(id) >= len(s.archetypes) {
		return nil
	}
	return s.archetypes[id]
}

// CreateEntity places a new entity in the archetype and returns its ID, or
// InvalidEntity when the free-ID pool is exhausted or the archetype is
// unknown.
func (s *Store) CreateEntity(arch ArchetypeID) EntityID {
	a := s.archetypeByID(arch)
	if a == nil {
		return InvalidEntity
	}
	if s.freeHead >= len(s.freeIDs) {
		return InvalidEntity
	}

	id := s.freeIDs[s.freeHead]
	s.freeHead++

	// Find a chunk with room, allocating one if all are full.
	chunkIdx := -1
	for i, c := range a.chunks {
		if c.count < a.capacity {
			chunkIdx = i
			break
		}
	}
	if chunkIdx == -1 {
		a.chunks = append(a.chunks, newChunk(a))
		chunkIdx = len(a.chunks) - 1
	}

	c := a.chunks[chunkIdx]
	idx := c.count
	c.entities[idx] = id
	c.count++

	// Zero the new slot's component bytes; slots are reused after
	// swap-remove.
	for ci, sz := range a.sizes {
		base := a.offsets[ci] + sz*idx
		clear(c.data[base : base+sz])
	}

	s.locations[id] = EntityLocation{
		Archetype:  arch,
		ChunkIndex: chunkIdx,
		Index:      idx,
		Valid:      true,
	}
	s.living++
	return id
}

// DestroyEntity removes an entity via swap-remove: the chunk's last slot is
// copied over the dying slot for every component column, the side table and
// the moved entity's location are fixed up, and the ID returns to the free
// pool. Invalid or dead IDs are ignored.
func (s *Store) DestroyEntity(id EntityID) {
	if int(id) >= len(s.locations) {
		return
	}
	loc := s.locations[id]
	if !loc.Valid {
		return
	}
	a := s.archetypeByID(loc.Archetype)
	c := a.chunks[loc.ChunkIndex]
	last := c.count - 1

	if loc.Index != last {
		for ci, sz := range a.sizes {
			base := a.offsets[ci]
			dst := base + sz*loc.Index
			src := base + sz*last
			copy(c.data[dst:dst+sz], c.data[src:src+sz])
		}
		moved := c.entities[last]
		c.entities[loc.Index] = moved
		s.locations[moved].Index = loc.Index
	}

	c.count--
	s.locations[id] = EntityLocation{}
	s.freeIDs = append(s.freeIDs, id)
	s.living--
}

// Alive reports whether the entity ID refers to a stored entity.
func (s *Store) Alive(id EntityID) bool {
	return int(id) < len(s.locations) && s.locations[id].Valid
}

// Location returns an entity's storage location.
func (s *Store) Location(id EntityID) (EntityLocation, bool) {
	if int(id) >= len(s.locations) || !s.locations[id].Valid {
		return EntityLocation{}, false
	}
	return s.locations[id], true
}

// LivingCount returns the number of stored entities.
func (s *Store) LivingCount() int { return s.living }

// ComponentData returns a pointer to an entity's component bytes, or nil if
// the entity is dead or the archetype lacks the component.
func (s *Store) ComponentData(id EntityID, comp ComponentID) unsafe.Pointer {
	if int(id) >= len(s.locations) {
		return nil
	}
	loc := s.locations[id]
	if !loc.Valid {
		return nil
	}
	a := s.archetypeByID(loc.Archetype)
	slot := a.componentSlot(comp)
	if slot < 0 {
		return nil
	}
	c := a.chunks[loc.ChunkIndex]
	off := a.offsets[slot] + a.sizes[slot]*loc.Index
	return unsafe.Pointer(&c.data[off])
}

// ChunkColumn returns a pointer to a component column's first element in a
// chunk, for iteration via ForEachInArchetype. Returns nil if the archetype
// lacks the component.
func (s *Store) ChunkColumn(arch ArchetypeID, chunk *Chunk, comp ComponentID) unsafe.Pointer {
	a := s.archetypeByID(arch)
	if a == nil {
		return nil
	}
	slot := a.componentSlot(comp)
	if slot < 0 {
		return nil
	}
	return unsafe.Pointer(&chunk.data[a.offsets[slot]])
}

// ForEachInArchetype visits every live slot of every chunk in order.
func (s *Store) ForEachInArchetype(arch ArchetypeID, visit func(chunk *Chunk, index int)) {
	a := s.archetypeByID(arch)
	if a == nil {
		return
	}
	for _, c := range a.chunks {
		for i := 0; i < c.count; i++ {
			visit(c, i)
		}
	}
}

// Get returns an entity's component as a typed pointer, or nil. The
// component must have been registered with the size of T.
func Get[T any](s *Store, id EntityID, comp ComponentID) *T {
	p := s.ComponentData(id, comp)
	if p == nil {
		return nil
	}
	return (*T)(p)
}

// RegisterComponentOf registers a component sized for T.
func RegisterComponentOf[T any](s *Store) ComponentID {
	var zero T
	return s.RegisterComponent(int(unsafe.Sizeof(zero)))
}
