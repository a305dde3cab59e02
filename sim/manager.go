package sim

import (
	"errors"
	"log/slog"
	"math"

	"github.com/paddocklabs/paddock/behavior"
	"github.com/paddocklabs/paddock/components"
	"github.com/paddocklabs/paddock/config"
	"github.com/paddocklabs/paddock/ecs"
	"github.com/paddocklabs/paddock/genetics"
	"github.com/paddocklabs/paddock/perception"
	"github.com/paddocklabs/paddock/scent"
	"github.com/paddocklabs/paddock/species"
	"github.com/paddocklabs/paddock/telemetry"
	"github.com/paddocklabs/paddock/vecmath"
)

// Breeding and spawning failure modes.
var (
	ErrStoreFull       = errors.New("sim: entity store full")
	ErrInvalidParent   = errors.New("sim: parent id out of range or dead")
	ErrSpeciesMismatch = errors.New("sim: parents are different species")
)

const (
	attackRange  = 5.0  // metres; also the drink interaction range
	baseDamage   = 30.0 // per second, scaled by size and aggression
	fleeSpeedMul = 1.5
	seekWaterMul = 0.8

	starveDamage    = 5.0 // health per second at zero hunger
	dehydrateDamage = 8.0 // health per second at zero thirst

	predatorScent  = 0.5
	herbivoreScent = 1.0
)

// HeightSampler supplies terrain height for foot placement. A nil sampler
// means flat ground at Y=0.
type HeightSampler interface {
	GetHeight(x, z float32) float32
}

// Manager owns the world: the entity store, one controller per creature,
// the scent field, clock and counters. It is single-threaded; one Tick runs
// to completion with no interior yields.
type Manager struct {
	cfg   *config.Config
	store *ecs.Store
	arch  ecs.ArchetypeID

	transformC ecs.ComponentID
	vitalsC    ecs.ComponentID
	geneticsC  ecs.ComponentID
	aiC        ecs.ComponentID
	speciesC   ecs.ComponentID

	// Entities in spawn order; the slice index equals the entity id because
	// ids are handed out FIFO from zero and slots are never reclaimed.
	entities    []ecs.EntityID
	controllers []*behavior.Controller

	catalogue [species.Count]species.Data

	scentField   *scent.Field
	wind         vecmath.Vec3
	waterSources []vecmath.Vec3
	height       HeightSampler

	simTime   float32
	timeOfDay float32
	isNight   bool
	tick      int32

	births        int
	deaths        int
	predatorKills int

	// Perception snapshot, rebuilt each tick.
	snapshot []perception.Target

	collector *telemetry.Collector
	lifetimes *telemetry.LifetimeTracker
	output    *telemetry.OutputManager
}

// NewManager builds a simulation world from configuration.
func NewManager(cfg *config.Config, height HeightSampler) *Manager {
	m := &Manager{
		cfg:        cfg,
		store:      ecs.NewStore(cfg.Population.MaxEntities),
		scentField: scent.NewField(cfg.Scent.GridSize, float32(cfg.Scent.CellSize)),
		height:     height,
		lifetimes:  telemetry.NewLifetimeTracker(),
	}

	m.transformC = ecs.RegisterComponentOf[components.Transform](m.store)
	m.vitalsC = ecs.RegisterComponentOf[components.Vitals](m.store)
	m.geneticsC = ecs.RegisterComponentOf[components.Genetics](m.store)
	m.aiC = ecs.RegisterComponentOf[components.AIState](m.store)
	m.speciesC = ecs.RegisterComponentOf[components.SpeciesTag](m.store)
	m.arch = m.store.RegisterArchetype(m.transformC, m.vitalsC, m.geneticsC, m.aiC, m.speciesC)

	m.catalogue = species.All()
	applyOverrides(&m.catalogue, cfg.Species)

	m.wind = vecmath.Vec3{
		X: m.cfg.Derived.Wind32[0],
		Y: m.cfg.Derived.Wind32[1],
		Z: m.cfg.Derived.Wind32[2],
	}
	for _, ws := range cfg.Derived.WaterSources32 {
		m.waterSources = append(m.waterSources, vecmath.Vec3{X: ws[0], Z: ws[1]})
	}

	return m
}

// applyOverrides patches catalogue entries named in the config. Zero-valued
// fields keep the built-in defaults.
func applyOverrides(cat *[species.Count]species.Data, overrides []config.SpeciesConfig) {
	for _, o := range overrides {
		id, ok := species.FromName(o.Name)
		if !ok {
			slog.Warn("unknown species in config", "name", o.Name)
			continue
		}
		d := &cat[id]
		if o.BaseHealth > 0 {
			d.BaseHealth = float32(o.BaseHealth)
		}
		if o.BaseSpeed > 0 {
			d.BaseSpeed = float32(o.BaseSpeed)
		}
		if o.BaseSize > 0 {
			d.BaseSize = float32(o.BaseSize)
		}
		if o.HungerRate > 0 {
			d.HungerRate = float32(o.HungerRate)
		}
		if o.ThirstRate > 0 {
			d.ThirstRate = float32(o.ThirstRate)
		}
	}
}

// SetTelemetry attaches a window collector and output manager. Either may
// be nil.
func (m *Manager) SetTelemetry(c *telemetry.Collector, out *telemetry.OutputManager) {
	m.collector = c
	m.output = out
}

// SpeciesData returns the (possibly config-overridden) catalogue entry.
func (m *Manager) SpeciesData(id species.ID) species.Data {
	if id >= species.Count {
		return m.catalogue[species.TRex]
	}
	return m.catalogue[id]
}

// SpawnDinosaur creates a creature of the species with a deterministic
// genome derived from the current entity count, placed randomly near the
// origin. Returns InvalidEntity if the store is full.
func (m *Manager) SpawnDinosaur(sp species.ID) ecs.EntityID {
	seed := uint32(len(m.entities))*breedSeedMult + 1

	var genome genetics.Genome
	for i := 0; i < 20; i++ {
		draw := genetics.XorShift32(&seed)
		genome.SetLocus(i, draw&1 != 0, draw&2 != 0)
	}

	spread := float32(m.cfg.Population.SpawnSpread)
	x := (unitDraw(&seed)*2 - 1) * spread
	z := (unitDraw(&seed)*2 - 1) * spread

	d := NewDinosaur(0, sp, m.SpeciesData(sp), genome)
	d.Transform.Position = vecmath.Vec3{X: x, Z: z}
	return m.place(d, sp)
}

// Breed mates two living creatures of the same species. The child appears
// at the midpoint of the parents' XZ positions, offset by (5, 5).
func (m *Manager) Breed(parentA, parentB ecs.EntityID) (ecs.EntityID, error) {
	va := m.Vitals(parentA)
	vb := m.Vitals(parentB)
	if va == nil || vb == nil || !va.Alive || !vb.Alive {
		return ecs.InvalidEntity, ErrInvalidParent
	}
	sa := ecs.Get[components.SpeciesTag](m.store, parentA, m.speciesC)
	sb := ecs.Get[components.SpeciesTag](m.store, parentB, m.speciesC)
	if sa.Species != sb.Species {
		return ecs.InvalidEntity, ErrSpeciesMismatch
	}

	ga := ecs.Get[components.Genetics](m.store, parentA, m.geneticsC)
	gb := ecs.Get[components.Genetics](m.store, parentB, m.geneticsC)
	ta := ecs.Get[components.Transform](m.store, parentA, m.transformC)
	tb := ecs.Get[components.Transform](m.store, parentB, m.transformC)

	childID := ecs.EntityID(len(m.entities))
	d := Breed(childID, sa.Species, m.SpeciesData(sa.Species),
		parentA, ga.Genome, parentB, gb.Genome)
	d.Transform.Position = vecmath.Vec3{
		X: (ta.Position.X+tb.Position.X)/2 + 5,
		Z: (ta.Position.Z+tb.Position.Z)/2 + 5,
	}

	id := m.place(d, sa.Species)
	if id == ecs.InvalidEntity {
		return ecs.InvalidEntity, ErrStoreFull
	}
	m.lifetimes.RecordChild(parentA)
	m.lifetimes.RecordChild(parentB)
	return id, nil
}

// place writes a factory-built creature into the store and registers its
// controller and telemetry.
func (m *Manager) place(d Dinosaur, sp species.ID) ecs.EntityID {
	id := m.store.CreateEntity(m.arch)
	if id == ecs.InvalidEntity {
		slog.Warn("spawn failed, store full", "species", sp.String())
		return ecs.InvalidEntity
	}
	d.ID = id

	*ecs.Get[components.Transform](m.store, id, m.transformC) = d.Transform
	*ecs.Get[components.Vitals](m.store, id, m.vitalsC) = d.Vitals
	*ecs.Get[components.Genetics](m.store, id, m.geneticsC) = d.Genetics
	*ecs.Get[components.AIState](m.store, id, m.aiC) = d.AI
	*ecs.Get[components.SpeciesTag](m.store, id, m.speciesC) = d.Species

	data := m.SpeciesData(sp)
	m.entities = append(m.entities, id)
	m.controllers = append(m.controllers, behavior.NewController(data.IsPredator, d.Genetics.Aggression))

	m.births++
	m.lifetimes.Register(id, m.tick, sp)
	if m.collector != nil {
		m.collector.RecordBirth()
	}
	return id
}

// Tick advances the world by dt seconds: clock, perception, per-creature
// needs/decision/dispatch in strict index order, scent, then death checks.
// Later creatures observe mutations made by earlier ones within the same
// tick; this is the determinism contract, not an accident.
func (m *Manager) Tick(dt float32) {
	if dt <= 0 {
		return
	}
	m.simTime += dt
	m.tick++
	m.timeOfDay += dt / 60
	for m.timeOfDay >= 24 {
		m.timeOfDay -= 24
	}
	m.isNight = m.timeOfDay < float32(m.cfg.World.NightEnd) || m.timeOfDay > float32(m.cfg.World.NightStart)

	m.buildSnapshot()

	for i, id := range m.entities {
		m.updateCreature(i, id, dt)
	}

	m.scentField.Update(dt, m.wind)

	m.deathCheck()

	if m.collector != nil && m.collector.ShouldFlush(m.tick) {
		m.flushTelemetry()
	}
}

// buildSnapshot rebuilds the perception target list over live creatures.
func (m *Manager) buildSnapshot() {
	m.snapshot = m.snapshot[:0]
	for _, id := range m.entities {
		v := m.Vitals(id)
		if !v.Alive {
			continue
		}
		tr := ecs.Get[components.Transform](m.store, id, m.transformC)
		sp := ecs.Get[components.SpeciesTag](m.store, id, m.speciesC)
		m.snapshot = append(m.snapshot, perception.Target{
			ID:         uint32(id),
			Position:   tr.Position,
			Radius:     tr.Scale.X,
			IsPredator: m.SpeciesData(sp.Species).IsPredator,
		})
	}
}

func (m *Manager) updateCreature(i int, id ecs.EntityID, dt float32) {
	v := m.Vitals(id)
	if !v.Alive {
		return
	}
	tr := ecs.Get[components.Transform](m.store, id, m.transformC)
	gen := ecs.Get[components.Genetics](m.store, id, m.geneticsC)
	ai := ecs.Get[components.AIState](m.store, id, m.aiC)
	spTag := ecs.Get[components.SpeciesTag](m.store, id, m.speciesC)
	data := m.SpeciesData(spTag.Species)
	ctrl := m.controllers[i]

	// Needs decay; vitals mirror need values for external observation.
	ctrl.UpdateNeeds(dt)
	v.Hunger = 100 * ctrl.NeedValue(behavior.NeedHunger)
	v.Thirst = 100 * ctrl.NeedValue(behavior.NeedThirst)
	v.Energy = 100 * ctrl.NeedValue(behavior.NeedEnergy)
	v.Age += dt

	// Vision pass.
	vs := perception.VisionSystem{
		FOVDegrees: float32(m.cfg.Vision.HerbivoreFOV),
		MaxRange:   float32(m.cfg.Vision.Range),
	}
	if data.IsPredator {
		vs.FOVDegrees = float32(m.cfg.Vision.PredatorFOV)
	}
	if m.isNight {
		vs.NightPenalty = float32(m.cfg.Vision.NightPenalty)
	}
	forward := vecmath.Vec3{
		X: sinf(tr.Rotation.Y),
		Z: cosf(tr.Rotation.Y),
	}
	sightings := vs.ProcessVision(tr.Position, forward, m.snapshot, uint32(id))

	threatVisible := false
	var threatID ecs.EntityID
	preyVisible := false
	var preyID ecs.EntityID
	if data.IsPredator {
		for _, s := range sightings {
			if !s.IsPredator {
				preyVisible = true
				preyID = ecs.EntityID(s.ID)
				break
			}
		}
	} else {
		if threat, ok := perception.DetectThreat(sightings); ok {
			threatVisible = true
			threatID = ecs.EntityID(threat.ID)
			safety := 1 - threat.Distance/vs.MaxRange
			if safety < 0 {
				safety = 0
			}
			ctrl.SetNeedValue(behavior.NeedSafety, safety)
		}
	}
	if !threatVisible {
		ctrl.SetNeedValue(behavior.NeedSafety, 1)
	}

	waterNearby, waterPos := m.nearestWater(tr.Position)

	// Herbivores can graze anywhere, so food is always in reach; predators
	// need visible prey.
	foodVisible := !data.IsPredator || preyVisible

	action := ctrl.DecideAction(threatVisible, foodVisible, waterNearby)
	ai.CurrentGoal = action
	ai.CurrentAction = action

	speed := data.BaseSpeed * gen.SpeedMultiplier

	switch action {
	case behavior.ActionWander:
		angle := sinf(m.simTime*0.1+float32(i)*1.7) * math.Pi
		dir := vecmath.Vec3{X: sinf(angle), Z: cosf(angle)}
		tr.Position = tr.Position.Add(dir.Scale(speed * dt))
		tr.Rotation.Y = angle
		ctrl.RestoreNeed(behavior.NeedEnergy, 0.001*dt)

	case behavior.ActionHunt:
		if preyVisible {
			m.hunt(id, preyID, tr, gen, ctrl, speed, dt)
		}

	case behavior.ActionFlee:
		if threatVisible {
			threatTr := ecs.Get[components.Transform](m.store, threatID, m.transformC)
			away := tr.Position.Sub(threatTr.Position)
			away.Y = 0
			dir := away.Normalize()
			if dir != (vecmath.Vec3{}) {
				tr.Position = tr.Position.Add(dir.Scale(speed * fleeSpeedMul * dt))
				tr.Rotation.Y = atan2f(dir.X, dir.Z)
			}
		}

	case behavior.ActionSeekWater, behavior.ActionDrink:
		if len(m.waterSources) > 0 {
			to := waterPos.Sub(tr.Position)
			to.Y = 0
			dist := to.Length()
			if dir := to.Normalize(); dir != (vecmath.Vec3{}) {
				tr.Position = tr.Position.Add(dir.Scale(speed * seekWaterMul * dt))
				tr.Rotation.Y = atan2f(dir.X, dir.Z)
			}
			if dist <= attackRange {
				ctrl.RestoreNeed(behavior.NeedThirst, 0.15*dt)
			}
		}

	case behavior.ActionSeekFood, behavior.ActionEat:
		if !data.IsPredator {
			ctrl.RestoreNeed(behavior.NeedHunger, 0.05*dt)
		}

	case behavior.ActionSleep:
		ctrl.RestoreNeed(behavior.NeedEnergy, 0.1*dt)

	case behavior.ActionIdle, behavior.ActionDefend, behavior.ActionPatrol, behavior.ActionSocialize:
		// No default side effect; game layers override these.
	}

	// Starvation and dehydration.
	if ctrl.NeedValue(behavior.NeedHunger) <= 0 {
		v.Health -= starveDamage * dt
	}
	if ctrl.NeedValue(behavior.NeedThirst) <= 0 {
		v.Health -= dehydrateDamage * dt
	}

	// Scent trail.
	amount := float32(herbivoreScent)
	if data.IsPredator {
		amount = predatorScent
	}
	m.scentField.EmitScent(tr.Position, amount)

	// Keep inside the world; feet on the ground.
	bound := m.cfg.Derived.Bound32
	tr.Position.X = clamp32(tr.Position.X, -bound, bound)
	tr.Position.Z = clamp32(tr.Position.Z, -bound, bound)
	if m.height != nil {
		tr.Position.Y = m.height.GetHeight(tr.Position.X, tr.Position.Z)
	} else {
		tr.Position.Y = 0
	}

	m.lifetimes.UpdateHealth(id, v.Health)
	m.lifetimes.UpdateSurvivalTime(id, m.tick, dt)
}

// hunt steps the predator toward its prey and resolves the attack. Kill
// credit lands on the tick the prey's health crosses zero.
func (m *Manager) hunt(id, preyID ecs.EntityID, tr *components.Transform,
	gen *components.Genetics, ctrl *behavior.Controller, speed, dt float32) {

	preyTr := ecs.Get[components.Transform](m.store, preyID, m.transformC)
	preyV := ecs.Get[components.Vitals](m.store, preyID, m.vitalsC)

	to := preyTr.Position.Sub(tr.Position)
	to.Y = 0
	dist := to.Length()
	if dir := to.Normalize(); dir != (vecmath.Vec3{}) {
		tr.Position = tr.Position.Add(dir.Scale(speed * dt))
		tr.Rotation.Y = atan2f(dir.X, dir.Z)
	}

	if dist > attackRange || !preyV.Alive || preyV.Health <= 0 {
		return
	}

	preyV.Health -= baseDamage * tr.Scale.X * gen.Aggression * dt
	if preyV.Health <= 0 {
		ctrl.RestoreNeed(behavior.NeedHunger, 0.6)
		m.predatorKills++
		m.lifetimes.RecordKill(id)
		if m.collector != nil {
			m.collector.RecordPredatorKill()
		}
	}
}

// nearestWater returns whether any water source lies within the configured
// range of pos in the XZ plane, and the closest source's position.
func (m *Manager) nearestWater(pos vecmath.Vec3) (bool, vecmath.Vec3) {
	best := float32(math.MaxFloat32)
	var bestPos vecmath.Vec3
	for _, w := range m.waterSources {
		dx := w.X - pos.X
		dz := w.Z - pos.Z
		d := dx*dx + dz*dz
		if d < best {
			best = d
			bestPos = w
		}
	}
	r := m.cfg.Derived.WaterRange32
	return len(m.waterSources) > 0 && best <= r*r, bestPos
}

// deathCheck flips the alive flag on creatures whose health reached zero.
// Storage slots stay allocated; death is logical.
func (m *Manager) deathCheck() {
	for _, id := range m.entities {
		v := m.Vitals(id)
		if !v.Alive || v.Health > 0 {
			continue
		}
		v.Alive = false
		m.deaths++
		if m.collector != nil {
			m.collector.RecordDeath()
		}

		sp := ecs.Get[components.SpeciesTag](m.store, id, m.speciesC)
		slog.Info("creature died",
			"id", uint32(id),
			"species", sp.Species.String(),
			"age", v.Age,
		)

		if final, ok := m.lifetimes.Remove(id); ok && m.output != nil {
			if err := m.output.WriteLifetime(telemetry.LifetimeCSV{
				EntityID:        uint32(id),
				Species:         final.Species.String(),
				BirthTick:       final.BirthTick,
				SurvivalTimeSec: final.SurvivalTimeSec,
				Kills:           final.Kills,
				Children:        final.Children,
				PeakHealth:      final.PeakHealth,
			}); err != nil {
				slog.Error("writing lifetime record", "error", err)
			}
		}
	}
}

// flushTelemetry samples world state and writes the closed window.
func (m *Manager) flushTelemetry() {
	sample := telemetry.Sample{
		TimeOfDay:      float64(m.timeOfDay),
		ScentTotalMass: m.scentField.TotalMass(),
		ScentPeak:      float64(m.scentField.Peak()),
	}
	for _, id := range m.entities {
		v := m.Vitals(id)
		if !v.Alive {
			continue
		}
		sp := ecs.Get[components.SpeciesTag](m.store, id, m.speciesC)
		if m.SpeciesData(sp.Species).IsPredator {
			sample.PredatorCount++
		} else {
			sample.HerbivoreCount++
		}
		sample.Healths = append(sample.Healths, float64(v.Health))
		sample.Hungers = append(sample.Hungers, float64(v.Hunger))
		sample.Thirsts = append(sample.Thirsts, float64(v.Thirst))
		sample.Energies = append(sample.Energies, float64(v.Energy))
	}

	stats := m.collector.Flush(m.tick, sample)
	stats.LogStats()
	if m.output != nil {
		if err := m.output.WriteTelemetry(stats); err != nil {
			slog.Error("writing telemetry", "error", err)
		}
	}
}

// Accessors for external observation and tests.

// EntityCount returns the number of creatures ever spawned, dead included.
func (m *Manager) EntityCount() int { return len(m.entities) }

// Births returns the cumulative birth count.
func (m *Manager) Births() int { return m.births }

// Deaths returns the cumulative death count.
func (m *Manager) Deaths() int { return m.deaths }

// PredatorKills returns the cumulative kill count.
func (m *Manager) PredatorKills() int { return m.predatorKills }

// SimTime returns the simulation clock in seconds.
func (m *Manager) SimTime() float32 { return m.simTime }

// TimeOfDay returns the in-world hour in [0, 24).
func (m *Manager) TimeOfDay() float32 { return m.timeOfDay }

// IsNight reports whether the world clock is in the night band.
func (m *Manager) IsNight() bool { return m.isNight }

// ScentField exposes the scent grid for observation.
func (m *Manager) ScentField() *scent.Field { return m.scentField }

// SetWind overrides the configured wind vector.
func (m *Manager) SetWind(w vecmath.Vec3) { m.wind = w }

// Transform returns a creature's transform, or nil for an unknown id.
func (m *Manager) Transform(id ecs.EntityID) *components.Transform {
	return ecs.Get[components.Transform](m.store, id, m.transformC)
}

// Vitals returns a creature's vitals, or nil for an unknown id.
func (m *Manager) Vitals(id ecs.EntityID) *components.Vitals {
	return ecs.Get[components.Vitals](m.store, id, m.vitalsC)
}

// Genetics returns a creature's genetics, or nil for an unknown id.
func (m *Manager) Genetics(id ecs.EntityID) *components.Genetics {
	return ecs.Get[components.Genetics](m.store, id, m.geneticsC)
}

// AIState returns a creature's AI state, or nil for an unknown id.
func (m *Manager) AIState(id ecs.EntityID) *components.AIState {
	return ecs.Get[components.AIState](m.store, id, m.aiC)
}

// Controller returns the need controller for an entity id, or nil.
func (m *Manager) Controller(id ecs.EntityID) *behavior.Controller {
	if int(id) >= len(m.controllers) {
		return nil
	}
	return m.controllers[id]
}

// Status is the external observability record for one creature.
type Status struct {
	ID       ecs.EntityID
	Species  species.ID
	Alive    bool
	Position vecmath.Vec3
	Health   float32
	Hunger   float32
	Thirst   float32
	Energy   float32
	Age      float32
	Action   behavior.Action
}

// Status returns the observability record for a creature, or false for an
// unknown id.
func (m *Manager) Status(id ecs.EntityID) (Status, bool) {
	v := m.Vitals(id)
	if v == nil {
		return Status{}, false
	}
	tr := m.Transform(id)
	ai := m.AIState(id)
	sp := ecs.Get[components.SpeciesTag](m.store, id, m.speciesC)
	return Status{
		ID:       id,
		Species:  sp.Species,
		Alive:    v.Alive,
		Position: tr.Position,
		Health:   v.Health,
		Hunger:   v.Hunger,
		Thirst:   v.Thirst,
		Energy:   v.Energy,
		Age:      v.Age,
		Action:   ai.CurrentAction,
	}, true
}
