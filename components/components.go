// Package components defines the plain-data component aggregates attached
// to every creature. They are laid out for by-value storage in the chunked
// entity store, so they hold no pointers or slices.
package components

import (
	"github.com/paddocklabs/paddock/behavior"
	"github.com/paddocklabs/paddock/genetics"
	"github.com/paddocklabs/paddock/species"
	"github.com/paddocklabs/paddock/vecmath"
)

// Transform is a creature's placement in the world. Rotation is Euler
// radians; Scale is uniform in practice but stored per-axis.
type Transform struct {
	Position vecmath.Vec3
	Rotation vecmath.Vec3
	Scale    vecmath.Vec3
}

// Vitals holds externally observable creature state. Hunger, Thirst and
// Energy mirror the AI need values scaled to [0,100].
type Vitals struct {
	Health float32
	Hunger float32
	Thirst float32
	Energy float32
	Age    float32
	Alive  bool
}

// Genetics carries the genome plus its resolved phenotype scalars.
type Genetics struct {
	Genome          genetics.Genome
	SizeMultiplier  float32
	SpeedMultiplier float32
	Aggression      float32
	SkinColor       [3]float32
}

// AIState tracks the controller's outward-facing decision state.
type AIState struct {
	CurrentGoal      behavior.Action
	CurrentAction    behavior.Action
	ActionProgress   float32
	DecisionCooldown float32
}

// SpeciesTag marks which catalogue entry a creature belongs to.
type SpeciesTag struct {
	Species species.ID
}
