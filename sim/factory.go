// Package sim runs the creature simulation: a deterministic per-tick loop
// over needs, perception, action dispatch, and world effects, on top of the
// chunked entity store.
package sim

import (
	"github.com/paddocklabs/paddock/behavior"
	"github.com/paddocklabs/paddock/components"
	"github.com/paddocklabs/paddock/ecs"
	"github.com/paddocklabs/paddock/genetics"
	"github.com/paddocklabs/paddock/species"
)

// Seed fold-in constants for breeding. Knuth's multiplicative constant plus
// two primes keep parent/child id combinations well spread.
const (
	breedSeedMult    = 2654435761
	breedSeedParentA = 7919
	breedSeedParentB = 104729
)

// Genome loci with fixed phenotype meanings. Remaining loci are free for
// color and future traits.
const (
	locusSize = iota
	locusSpeed
	locusAggression
	locusColorR
	locusColorG
	locusColorB
)

// Dinosaur is the component bundle produced by the factory, written into
// the store by the manager.
type Dinosaur struct {
	ID        ecs.EntityID
	Transform components.Transform
	Vitals    components.Vitals
	Genetics  components.Genetics
	AI        components.AIState
	Species   components.SpeciesTag
}

// NewDinosaur builds a fully populated creature from species defaults and a
// genome. Size, speed and aggression come from the first three loci; skin
// color from the next three, renormalized to [0,1].
func NewDinosaur(id ecs.EntityID, sp species.ID, data species.Data, genome genetics.Genome) Dinosaur {
	sizeMult := genome.Resolve(locusSize)
	speedMult := genome.Resolve(locusSpeed)
	aggression := genome.Resolve(locusAggression)

	scale := data.BaseSize * sizeMult

	return Dinosaur{
		ID: id,
		Transform: components.Transform{
			Scale: vec3Splat(scale),
		},
		Vitals: components.Vitals{
			Health: data.BaseHealth * sizeMult,
			Hunger: 80,
			Thirst: 80,
			Energy: 100,
			Alive:  true,
		},
		Genetics: components.Genetics{
			Genome:          genome,
			SizeMultiplier:  sizeMult,
			SpeedMultiplier: speedMult,
			Aggression:      aggression,
			SkinColor: [3]float32{
				genome.Resolve(locusColorR) / genetics.PhenotypeMax,
				genome.Resolve(locusColorG) / genetics.PhenotypeMax,
				genome.Resolve(locusColorB) / genetics.PhenotypeMax,
			},
		},
		AI: components.AIState{
			CurrentGoal:   behavior.ActionIdle,
			CurrentAction: behavior.ActionIdle,
		},
		Species: components.SpeciesTag{Species: sp},
	}
}

// BreedSeed folds child and parent ids into a crossover seed. The result is
// never zero.
func BreedSeed(childID, parentAID, parentBID ecs.EntityID) uint32 {
	seed := uint32(childID)*breedSeedMult ^
		uint32(parentAID)*breedSeedParentA ^
		uint32(parentBID)*breedSeedParentB
	if seed == 0 {
		seed = breedSeedMult
	}
	return seed
}

// Breed crosses two parent genomes and builds the child creature. The
// caller guarantees the parents share a species; the child takes parent A's.
func Breed(childID ecs.EntityID, sp species.ID, data species.Data,
	parentAID ecs.EntityID, genomeA genetics.Genome,
	parentBID ecs.EntityID, genomeB genetics.Genome) Dinosaur {

	seed := BreedSeed(childID, parentAID, parentBID)
	child := genetics.Crossover(genomeA, genomeB, &seed)
	return NewDinosaur(childID, sp, data, child)
}
