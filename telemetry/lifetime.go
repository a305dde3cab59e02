package telemetry

import (
	"github.com/paddocklabs/paddock/ecs"
	"github.com/paddocklabs/paddock/species"
)

// LifetimeStats tracks per-entity statistics over its lifetime.
type LifetimeStats struct {
	BirthTick       int32
	SurvivalTimeSec float32

	Species species.ID

	// Hunting (predators)
	Kills int

	// Reproduction
	Children int

	PeakHealth float32
}

// LifetimeTracker manages per-entity lifetime statistics, backed by a
// sparse set so iteration stays dense as creatures die off.
type LifetimeTracker struct {
	stats *ecs.SparseSet[LifetimeStats]
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: ecs.NewSparseSet[LifetimeStats](),
	}
}

// Register creates lifetime stats for a new entity.
func (lt *LifetimeTracker) Register(id ecs.EntityID, birthTick int32, sp species.ID) {
	lt.stats.Insert(id, LifetimeStats{
		BirthTick: birthTick,
		Species:   sp,
	})
}

// Get returns the lifetime stats for an entity, or nil if not found.
func (lt *LifetimeTracker) Get(id ecs.EntityID) *LifetimeStats {
	return lt.stats.Get(id)
}

// Remove removes an entity's stats and returns a copy for final logging.
func (lt *LifetimeTracker) Remove(id ecs.EntityID) (LifetimeStats, bool) {
	s := lt.stats.Get(id)
	if s == nil {
		return LifetimeStats{}, false
	}
	out := *s
	lt.stats.Remove(id)
	return out, true
}

// RecordKill increments kill count.
func (lt *LifetimeTracker) RecordKill(id ecs.EntityID) {
	if s := lt.stats.Get(id); s != nil {
		s.Kills++
	}
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID ecs.EntityID) {
	if s := lt.stats.Get(parentID); s != nil {
		s.Children++
	}
}

// UpdateHealth tracks peak health.
func (lt *LifetimeTracker) UpdateHealth(id ecs.EntityID, health float32) {
	if s := lt.stats.Get(id); s != nil {
		if health > s.PeakHealth {
			s.PeakHealth = health
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifetimeTracker) UpdateSurvivalTime(id ecs.EntityID, currentTick int32, dt float32) {
	if s := lt.stats.Get(id); s != nil {
		s.SurvivalTimeSec = float32(currentTick-s.BirthTick) * dt
	}
}

// ForEach visits all tracked stats.
func (lt *LifetimeTracker) ForEach(visit func(id ecs.EntityID, s *LifetimeStats)) {
	lt.stats.ForEach(visit)
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return lt.stats.Len()
}
